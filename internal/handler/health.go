package handler

import (
	"net/http"
	"time"

	"github.com/Dhruv-Ghanchi/Odoo-Globe-Trotter/spec"
)

// handleHealth handles GET /health.
// It reports liveness plus database reachability so load balancers and
// uptime checks can distinguish "process up" from "process useful".
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	status := http.StatusOK
	if err := s.db.Ping(r.Context()); err != nil {
		dbStatus = "unreachable"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, envelope{
		Success: status == http.StatusOK,
		Message: "Server is running",
		Data: map[string]any{
			"database":  dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// handleOpenAPI serves the embedded OpenAPI document at GET /openapi.yaml.
// Serving it from the binary means the spec and the running code are always in sync.
func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
