package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"pumpadmin/auth"
	"pumpadmin/db"
	"pumpadmin/debounce"
	"pumpadmin/listing"
	"pumpadmin/middleware"
	"pumpadmin/models"
	"pumpadmin/repo"
	"pumpadmin/validate"
)

type UserHandler struct {
	store    *db.FirestoreDB
	users    *repo.Users
	checks   *debounce.Scheduler
	pageSize int
}

func NewUserHandler(store *db.FirestoreDB, users *repo.Users, checks *debounce.Scheduler, pageSize int) *UserHandler {
	return &UserHandler{
		store:    store,
		users:    users,
		checks:   checks,
		pageSize: pageSize,
	}
}

// List returns the filtered, paginated user list.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	users, err := h.users.List(r.Context())
	if err != nil {
		log.Printf("❌ Failed to get users: %v", err)
		writeError(w, "Failed to retrieve users", http.StatusInternalServerError)
		return
	}

	lq := parseListQuery(r, h.pageSize)

	filtered := listing.FilterText(users, lq.Search, func(u models.User) []string {
		return []string{u.FirstName, u.LastName, u.Mobile, u.Email}
	})
	filtered = listing.Apply(filtered,
		preferredCompanyFacet(lq.Company),
		listing.Facet(lq.Status, func(u models.User) string { return string(u.TeamMemberStatus) }),
		listing.DateRange(lq.Range, time.Now(), func(u models.User) time.Time { return u.CreatedAt }),
		listing.Facet(lq.Tab, func(u models.User) string { return string(u.UserType) }),
	)

	writeJSON(w, http.StatusOK, ListResponse{
		Items:    listing.Window(filtered, lq.Page, lq.PageSize),
		Count:    len(filtered),
		Page:     lq.Page,
		PageSize: lq.PageSize,
	})
}

// preferredCompanyFacet matches users whose preferred-company set contains
// the selected company.
func preferredCompanyFacet(value string) listing.Predicate[models.User] {
	if value == "" || value == listing.FacetAll {
		return func(models.User) bool { return true }
	}
	return func(u models.User) bool {
		for _, c := range u.PreferredCompanies {
			if strings.EqualFold(string(c), value) {
				return true
			}
		}
		return false
	}
}

type CreateUserRequest struct {
	models.User
	Password string `json:"password,omitempty"`
}

// Create adds a new user after local validation and duplicate checks.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, "User not found in context", http.StatusUnauthorized)
		return
	}

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.User(req.User); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Password != "" {
		if err := auth.ValidatePasswordStrength(req.Password); err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	created, err := h.users.Create(r.Context(), req.User, actor.UserID)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicateMobile), errors.Is(err, repo.ErrDuplicateEmail):
			writeError(w, err.Error(), http.StatusConflict)
		default:
			log.Printf("❌ Failed to create user: %v", err)
			writeError(w, "Failed to create user", http.StatusInternalServerError)
		}
		return
	}

	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			log.Printf("❌ Failed to hash password: %v", err)
			writeError(w, "Failed to store password", http.StatusInternalServerError)
			return
		}
		if err := h.store.StorePasswordHash(r.Context(), created.UserID, hash); err != nil {
			log.Printf("❌ Failed to store password: %v", err)
			writeError(w, "Failed to store password", http.StatusInternalServerError)
			return
		}
	}

	log.Printf("✅ User created by %s: %s", actor.UserID, created.UserID)
	writeJSON(w, http.StatusCreated, created)
}

type UpdateUserRequest struct {
	UserID string                 `json:"userId"`
	Fields map[string]interface{} `json:"fields"`
}

// Update merges the submitted fields into a user document. Fields the editor
// did not submit are left as they are.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, "User not found in context", http.StatusUnauthorized)
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.UserID == "" || len(req.Fields) == 0 {
		writeError(w, "User ID and at least one field are required", http.StatusBadRequest)
		return
	}

	if mobile, ok := req.Fields["mobile"].(string); ok {
		if err := validate.Mobile(mobile); err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if email, ok := req.Fields["email"].(string); ok && email != "" {
		if err := validate.Email(email); err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if err := h.users.Update(r.Context(), req.UserID, req.Fields, actor.UserID); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicateMobile), errors.Is(err, repo.ErrDuplicateEmail):
			writeError(w, err.Error(), http.StatusConflict)
		default:
			log.Printf("❌ Failed to update user %s: %v", req.UserID, err)
			writeError(w, "Failed to update user", http.StatusInternalServerError)
		}
		return
	}

	log.Printf("✅ User updated by %s: %s", actor.UserID, req.UserID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "User updated successfully"})
}

type availabilityResult struct {
	taken bool
	err   error
}

// CheckAvailability answers whether a mobile or email value is free. Checks
// are debounced per field: a burst of checks for the same field only sends
// the last one to the store, and superseded requests get a 409.
func (h *UserHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	field := r.URL.Query().Get("field")
	value := r.URL.Query().Get("value")
	exclude := r.URL.Query().Get("exclude")
	if field != "mobile" && field != "email" {
		writeError(w, "Field must be mobile or email", http.StatusBadRequest)
		return
	}
	if value == "" {
		writeError(w, "Value is required", http.StatusBadRequest)
		return
	}

	done := make(chan availabilityResult, 1)
	canceled := h.checks.Schedule("availability:"+field, func() {
		var res availabilityResult
		if field == "mobile" {
			res.taken, res.err = h.users.IsMobileTaken(r.Context(), value, exclude)
		} else {
			res.taken, res.err = h.users.IsEmailTaken(r.Context(), value, exclude)
		}
		done <- res
	})

	select {
	case res := <-done:
		if res.err != nil {
			log.Printf("❌ Availability check failed for %s: %v", field, res.err)
			writeError(w, "Failed to check availability", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"field":     field,
			"available": !res.taken,
		})
	case <-canceled:
		writeError(w, "Check superseded by a newer request", http.StatusConflict)
	case <-r.Context().Done():
		h.checks.Cancel("availability:" + field)
	}
}
