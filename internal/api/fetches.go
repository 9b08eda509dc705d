package api

import (
	"net/http"
	"strconv"
)

// handleGetFetches returns the most recent journaled upstream requests
func (s *Server) handleGetFetches(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		respondError(w, http.StatusNotFound, "Fetch journal is disabled")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	records, err := s.journal.RecentFetches(limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to read fetch journal")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"fetches":     records,
		"total_count": len(records),
	})
}
