package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"pumpadmin/listing"
	"pumpadmin/middleware"
	"pumpadmin/models"
	"pumpadmin/repo"
	"pumpadmin/validate"
)

type TeamHandler struct {
	teams    *repo.Teams
	pageSize int
}

func NewTeamHandler(teams *repo.Teams, pageSize int) *TeamHandler {
	return &TeamHandler{teams: teams, pageSize: pageSize}
}

// List returns the filtered, paginated team list.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	teams, err := h.teams.List(r.Context())
	if err != nil {
		log.Printf("❌ Failed to get teams: %v", err)
		writeError(w, "Failed to retrieve teams", http.StatusInternalServerError)
		return
	}

	lq := parseListQuery(r, h.pageSize)

	filtered := listing.FilterText(teams, lq.Search, func(t models.Team) []string {
		return []string{t.Name, t.TeamCode, t.Owner}
	})
	filtered = listing.Apply(filtered,
		listing.DateRange(lq.Range, time.Now(), func(t models.Team) time.Time { return t.CreatedAt }),
	)

	writeJSON(w, http.StatusOK, ListResponse{
		Items:    listing.Window(filtered, lq.Page, lq.PageSize),
		Count:    len(filtered),
		Page:     lq.Page,
		PageSize: lq.PageSize,
	})
}

// Create adds a new team.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, "User not found in context", http.StatusUnauthorized)
		return
	}

	var team models.Team
	if err := json.NewDecoder(r.Body).Decode(&team); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Required("team name", team.Name); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.teams.Create(r.Context(), team, actor.UserID)
	if err != nil {
		log.Printf("❌ Failed to create team: %v", err)
		writeError(w, "Failed to create team", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Team created by %s: %s (%s)", actor.UserID, created.Name, created.TeamCode)
	writeJSON(w, http.StatusCreated, created)
}

type UpdateTeamRequest struct {
	TeamID string                 `json:"teamId"`
	Fields map[string]interface{} `json:"fields"`
}

// Update merges the submitted fields into a team document.
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, "User not found in context", http.StatusUnauthorized)
		return
	}

	var req UpdateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.TeamID == "" || len(req.Fields) == 0 {
		writeError(w, "Team ID and at least one field are required", http.StatusBadRequest)
		return
	}

	if err := h.teams.Update(r.Context(), req.TeamID, req.Fields, actor.UserID); err != nil {
		log.Printf("❌ Failed to update team %s: %v", req.TeamID, err)
		writeError(w, "Failed to update team", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Team updated by %s: %s", actor.UserID, req.TeamID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Team updated successfully"})
}
