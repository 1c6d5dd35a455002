package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"pumpadmin/listing"
	"pumpadmin/middleware"
	"pumpadmin/models"
	"pumpadmin/repo"
	"pumpadmin/validate"
)

type RequestHandler struct {
	requests *repo.Requests
	pumps    *repo.Pumps
	pageSize int
}

func NewRequestHandler(requests *repo.Requests, pumps *repo.Pumps, pageSize int) *RequestHandler {
	return &RequestHandler{
		requests: requests,
		pumps:    pumps,
		pageSize: pageSize,
	}
}

// List returns the filtered, paginated request list.
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requests, err := h.requests.List(r.Context())
	if err != nil {
		log.Printf("❌ Failed to get requests: %v", err)
		writeError(w, "Failed to retrieve pump requests", http.StatusInternalServerError)
		return
	}

	lq := parseListQuery(r, h.pageSize)

	filtered := listing.FilterText(requests, lq.Search, func(req models.PumpRequest) []string {
		return []string{req.CustomerName, req.DealerName, req.District, req.SapCode, string(req.Company)}
	})
	filtered = listing.Apply(filtered,
		listing.Facet(lq.Company, func(req models.PumpRequest) string { return string(req.Company) }),
		listing.Facet(lq.District, func(req models.PumpRequest) string { return req.District }),
		listing.Facet(lq.Status, func(req models.PumpRequest) string { return string(req.Status) }),
		listing.DateRange(lq.Range, time.Now(), func(req models.PumpRequest) time.Time { return req.CreatedAt }),
	)

	writeJSON(w, http.StatusOK, ListResponse{
		Items:    listing.Window(filtered, lq.Page, lq.PageSize),
		Count:    len(filtered),
		Page:     lq.Page,
		PageSize: lq.PageSize,
	})
}

// Create files a new onboarding request after local validation.
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, "User not found in context", http.StatusUnauthorized)
		return
	}

	var request models.PumpRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Request(request); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.requests.Create(r.Context(), request, actor.UserID)
	if err != nil {
		log.Printf("❌ Failed to create request: %v", err)
		writeError(w, "Failed to create pump request", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Pump request created by %s: %s", actor.UserID, created.RequestID)
	writeJSON(w, http.StatusCreated, created)
}

type ReviewRequest struct {
	RequestID string `json:"requestId"`
	Notes     string `json:"notes"`
}

// Approve moves a pending request to approved and publishes the pump
// listing.
func (h *RequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, models.RequestApproved)
}

// Reject moves a pending request to rejected.
func (h *RequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, models.RequestRejected)
}

func (h *RequestHandler) review(w http.ResponseWriter, r *http.Request, to models.RequestStatus) {
	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, "User not found in context", http.StatusUnauthorized)
		return
	}

	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.RequestID == "" {
		writeError(w, "Request ID is required", http.StatusBadRequest)
		return
	}

	var reviewed models.PumpRequest
	var err error
	if to == models.RequestApproved {
		reviewed, err = h.requests.Approve(r.Context(), req.RequestID, actor.UserID, req.Notes)
	} else {
		reviewed, err = h.requests.Reject(r.Context(), req.RequestID, actor.UserID, req.Notes)
	}
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			writeError(w, "Request not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrInvalidTransition):
			writeError(w, "Request has already been reviewed", http.StatusConflict)
		default:
			log.Printf("❌ Failed to review request %s: %v", req.RequestID, err)
			writeError(w, "Failed to review pump request", http.StatusInternalServerError)
		}
		return
	}

	// An approved request becomes a live pump listing.
	if to == models.RequestApproved {
		if _, err := h.pumps.Create(r.Context(), repo.PumpFromRequest(reviewed), actor.UserID); err != nil {
			log.Printf("❌ Approved request %s but failed to publish pump: %v", req.RequestID, err)
			writeError(w, "Request approved but pump listing failed; retry publishing", http.StatusInternalServerError)
			return
		}
	}

	log.Printf("✅ Request %s %s by %s", req.RequestID, reviewed.Status, actor.UserID)
	writeJSON(w, http.StatusOK, reviewed)
}
