package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleFeedbackStats(w http.ResponseWriter, r *http.Request) {
	if s.mentor == nil || s.mentor.Stats == nil {
		jsonError(w, "feedback stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"stats": s.mentor.Stats.Snapshot(),
	})
}
