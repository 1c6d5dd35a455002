package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"pumpadmin/listing"
	"pumpadmin/middleware"
	"pumpadmin/models"
	"pumpadmin/repo"
	"pumpadmin/validate"
)

type PumpHandler struct {
	pumps    *repo.Pumps
	pageSize int
}

func NewPumpHandler(pumps *repo.Pumps, pageSize int) *PumpHandler {
	return &PumpHandler{pumps: pumps, pageSize: pageSize}
}

// List returns the filtered, paginated pump list.
func (h *PumpHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pumps, err := h.pumps.List(r.Context())
	if err != nil {
		log.Printf("❌ Failed to get pumps: %v", err)
		writeError(w, "Failed to retrieve petrol pumps", http.StatusInternalServerError)
		return
	}

	lq := parseListQuery(r, h.pageSize)
	filtered := h.filter(pumps, lq)

	writeJSON(w, http.StatusOK, ListResponse{
		Items:    listing.Window(filtered, lq.Page, lq.PageSize),
		Count:    len(filtered),
		Page:     lq.Page,
		PageSize: lq.PageSize,
	})
}

func (h *PumpHandler) filter(pumps []models.PetrolPump, lq listQuery) []models.PetrolPump {
	filtered := listing.FilterText(pumps, lq.Search, func(p models.PetrolPump) []string {
		return []string{p.CustomerName, p.DealerName, p.District, p.SapCode, string(p.Company)}
	})
	return listing.Apply(filtered,
		listing.Facet(lq.Company, func(p models.PetrolPump) string { return string(p.Company) }),
		listing.Facet(lq.District, func(p models.PetrolPump) string { return p.District }),
		listing.DateRange(lq.Range, time.Now(), func(p models.PetrolPump) time.Time { return p.CreatedAt }),
		pumpTabFacet(lq.Tab),
	)
}

// pumpTabFacet maps the list view's coarse tabs onto the verification flags.
func pumpTabFacet(tab string) listing.Predicate[models.PetrolPump] {
	switch tab {
	case "verified":
		return func(p models.PetrolPump) bool { return p.Verified }
	case "unverified":
		return func(p models.PetrolPump) bool { return !p.Verified }
	case "active":
		return func(p models.PetrolPump) bool { return p.Active }
	case "inactive":
		return func(p models.PetrolPump) bool { return !p.Active }
	default:
		return func(models.PetrolPump) bool { return true }
	}
}

// Create adds a new pump listing after local validation. No store call is
// made when validation fails.
func (h *PumpHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, "User not found in context", http.StatusUnauthorized)
		return
	}

	var pump models.PetrolPump
	if err := json.NewDecoder(r.Body).Decode(&pump); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Pump(pump); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.pumps.Create(r.Context(), pump, actor.UserID)
	if err != nil {
		log.Printf("❌ Failed to create pump: %v", err)
		writeError(w, "Failed to create petrol pump", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Pump created by %s: %s (%s)", actor.UserID, created.CustomerName, created.SapCode)
	writeJSON(w, http.StatusCreated, created)
}

type UpdatePumpRequest struct {
	PumpID string                 `json:"pumpId"`
	Fields map[string]interface{} `json:"fields"`
}

// Update merges the submitted fields into a pump document.
func (h *PumpHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, "User not found in context", http.StatusUnauthorized)
		return
	}

	var req UpdatePumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.PumpID == "" || len(req.Fields) == 0 {
		writeError(w, "Pump ID and at least one field are required", http.StatusBadRequest)
		return
	}

	if pin, ok := req.Fields["pincode"].(string); ok {
		if err := validate.Pincode(pin); err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if sap, ok := req.Fields["sapCode"].(string); ok {
		if err := validate.SapCode(sap); err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if err := h.pumps.Update(r.Context(), req.PumpID, req.Fields, actor.UserID); err != nil {
		log.Printf("❌ Failed to update pump %s: %v", req.PumpID, err)
		writeError(w, "Failed to update petrol pump", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Pump updated by %s: %s", actor.UserID, req.PumpID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Petrol pump updated successfully"})
}

// Export writes the filtered pump list as a CSV download.
func (h *PumpHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pumps, err := h.pumps.List(r.Context())
	if err != nil {
		log.Printf("❌ Failed to get pumps: %v", err)
		writeError(w, "Failed to retrieve petrol pumps", http.StatusInternalServerError)
		return
	}

	lq := parseListQuery(r, h.pageSize)
	filtered := h.filter(pumps, lq)

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("petrol_pumps_%s.csv", timestamp)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{
		"SAP Code",
		"Customer Name",
		"Dealer Name",
		"Company",
		"Zone",
		"Sales Area",
		"Regional Office",
		"District",
		"Pincode",
		"Contact",
		"Latitude",
		"Longitude",
		"Verified",
		"Active",
		"Created At",
	}
	if err := writer.Write(header); err != nil {
		log.Printf("❌ Failed to write CSV header: %v", err)
		return
	}

	for _, p := range filtered {
		row := []string{
			p.SapCode,
			p.CustomerName,
			p.DealerName,
			string(p.Company),
			p.Zone,
			p.SalesArea,
			p.RegionalOffice,
			p.District,
			p.Pincode,
			p.Contact,
			strconv.FormatFloat(p.Location.Latitude, 'f', 6, 64),
			strconv.FormatFloat(p.Location.Longitude, 'f', 6, 64),
			strconv.FormatBool(p.Verified),
			strconv.FormatBool(p.Active),
			p.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			log.Printf("❌ Failed to write CSV row: %v", err)
			return
		}
	}
}
