package handlers

import (
	"errors"
	"log"
	"net/http"

	"pumpadmin/search"
)

type SearchHandler struct {
	aggregator *search.Aggregator
}

func NewSearchHandler(aggregator *search.Aggregator) *SearchHandler {
	return &SearchHandler{aggregator: aggregator}
}

// Search runs a global query across users, teams, pumps and requests.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")

	results, err := h.aggregator.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, search.ErrStale) {
			writeError(w, "Search superseded by a newer query", http.StatusConflict)
			return
		}
		log.Printf("❌ Global search failed: %v", err)
		writeError(w, "Search is temporarily unavailable", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"count":   len(results),
	})
}
