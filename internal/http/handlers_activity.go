package http

import (
	"net/http"
	"time"
)

type activityEntryResponse struct {
	At      time.Time `json:"at"`
	Message string    `json:"message"`
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	key := userKey(r)
	limit := parseLimit(r, "limit", 50)

	entries, err := s.svc.Activity(r.Context(), key, limit)
	if err != nil {
		respondCoreError(w, r, err)
		return
	}
	out := make([]activityEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, activityEntryResponse{At: e.At, Message: e.Message})
	}
	respondJSON(w, http.StatusOK, out)
}
