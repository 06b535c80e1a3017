package api

import (
	"net/http"
	"time"

	respond "github.com/imanelbaz22-debug/serene-app/internal/api/respond"
)

// ServiceHealth is the view of the aggregate checker the handler needs.
type ServiceHealth interface {
	IsHealthy() bool
	Components() map[string]bool
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	svc          ServiceHealth
	aiConfigured bool
}

func NewHealthHandler(svc ServiceHealth, aiConfigured bool) *HealthHandler {
	return &HealthHandler{svc: svc, aiConfigured: aiConfigured}
}

// CheckHealth handles GET /api/health
// Always returns 200; body reports healthy/unhealthy. 500 indicates handler failure only.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "unhealthy"
	components := map[string]bool{}
	if h.svc != nil {
		if h.svc.IsHealthy() {
			status = "healthy"
		}
		components = h.svc.Components()
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":        status,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"components":    components,
		"ai_configured": h.aiConfigured,
	})
}
