package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"pumpadmin/auth"
	"pumpadmin/db"
	"pumpadmin/models"
	"pumpadmin/repo"
)

type AuthHandler struct {
	store      *db.FirestoreDB
	users      *repo.Users
	jwtManager *auth.JWTManager
}

func NewAuthHandler(store *db.FirestoreDB, users *repo.Users, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		store:      store,
		users:      users,
		jwtManager: jwtManager,
	}
}

type LoginRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

// Login authenticates a dashboard user by mobile number and password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Mobile == "" || req.Password == "" {
		writeError(w, "Mobile and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.users.FindByMobile(r.Context(), req.Mobile)
	if err != nil {
		log.Printf("Login failed for %s: user not found", req.Mobile)
		writeError(w, "Invalid mobile or password", http.StatusUnauthorized)
		return
	}

	if user.IsBlocked {
		writeError(w, "Account is blocked", http.StatusForbidden)
		return
	}

	passwordHash, err := h.store.GetPasswordHash(r.Context(), user.UserID)
	if err != nil {
		log.Printf("Login failed for %s: password hash not found", req.Mobile)
		writeError(w, "Invalid mobile or password", http.StatusUnauthorized)
		return
	}

	if err := auth.CheckPassword(req.Password, passwordHash); err != nil {
		log.Printf("Login failed for %s: invalid password", req.Mobile)
		writeError(w, "Invalid mobile or password", http.StatusUnauthorized)
		return
	}

	token, err := h.jwtManager.GenerateToken(&user)
	if err != nil {
		log.Printf("Failed to generate token for %s: %v", user.UserID, err)
		writeError(w, "Failed to generate authentication token", http.StatusInternalServerError)
		return
	}

	refreshToken, err := h.jwtManager.GenerateRefreshToken(&user)
	if err != nil {
		log.Printf("Failed to generate refresh token for %s: %v", user.UserID, err)
		writeError(w, "Failed to generate refresh token", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ User logged in: %s (%s)", user.UserID, user.UserType)

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         user,
	})
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	Token string `json:"token"`
}

// RefreshToken exchanges a valid refresh token for a new access token.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	claims, err := h.jwtManager.ValidateToken(req.RefreshToken)
	if err != nil {
		writeError(w, "Invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	user, err := h.users.FindByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, "User not found", http.StatusUnauthorized)
		return
	}

	token, err := h.jwtManager.GenerateToken(&user)
	if err != nil {
		log.Printf("Failed to generate token for %s: %v", user.UserID, err)
		writeError(w, "Failed to generate authentication token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, RefreshTokenResponse{Token: token})
}
