package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// ListResponse is the envelope every list endpoint returns.
type ListResponse struct {
	Items    interface{} `json:"items"`
	Count    int         `json:"count"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

// listQuery carries the filter, facet and page state of a list view, parsed
// from query parameters.
type listQuery struct {
	Search   string
	Company  string
	District string
	Status   string
	Range    string
	Tab      string
	Page     int
	PageSize int
}

func parseListQuery(r *http.Request, defaultPageSize int) listQuery {
	q := r.URL.Query()
	lq := listQuery{
		Search:   q.Get("q"),
		Company:  q.Get("company"),
		District: q.Get("district"),
		Status:   q.Get("status"),
		Range:    q.Get("range"),
		Tab:      q.Get("tab"),
		Page:     0,
		PageSize: defaultPageSize,
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page >= 0 {
		lq.Page = page
	}
	if size, err := strconv.Atoi(q.Get("pageSize")); err == nil && size > 0 {
		lq.PageSize = size
	}
	return lq
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
