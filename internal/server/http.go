package server

import (
	"encoding/json"
	"net/http"

	"github.com/zeusync/formations/internal/core/observability/log"
)

type healthResponse struct {
	Status string `json:"status"`
	Stats
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if err := json.NewEncoder(w).Encode(healthResponse{Status: "ok", Stats: s.GetStats()}); err != nil {
		s.logger.Warn("Failed to write health response", log.Error(err))
	}
}
