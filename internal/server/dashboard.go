package server

import (
	_ "embed"
	"net/http"
)

//go:embed static/index.html
var dashboardHTML []byte

// handleDashboard serves the single page map dashboard.
func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(dashboardHTML) //nolint:errcheck // best-effort static response
}
