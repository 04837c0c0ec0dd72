package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/wreckster1507/sentiment-analysis/internal/api/respond"
	"github.com/wreckster1507/sentiment-analysis/internal/health"
)

// HealthHandler reports cached service health gathered by the background
// monitor; the request path never probes dependencies directly.
type HealthHandler struct {
	checker *health.ServiceHealthChecker
}

func NewHealthHandler(checker *health.ServiceHealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// CheckHealth handles GET /api/health
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	if h.checker.IsHealthy() {
		respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"message":   "API and local model are running",
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}

	failing := h.checker.Unhealthy()
	msg := "One or more dependencies unavailable"
	if len(failing) > 0 {
		msg = "unavailable: " + strings.Join(failing, ", ")
	}
	respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
		"status":    "unhealthy",
		"message":   msg,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
