package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// HealthResponse represents the response structure for health check endpoints.
type HealthResponse struct {
	Status    string            `json:"status"`            // "ok" or "error"
	Timestamp time.Time         `json:"timestamp"`         // Current server time
	Checks    map[string]string `json:"checks,omitempty"`  // Individual component health
	Uptime    string            `json:"uptime,omitempty"`  // Server uptime
}

var startTime = time.Now()

// HealthCheck handles the /health endpoint.
// This is a lightweight liveness probe: it returns 200 OK whenever the
// process is running and does NOT touch dependencies. Use /readiness for
// dependency checks.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(startTime).Round(time.Second).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// ReadinessCheck handles the /readiness endpoint.
// It verifies that the document store answers pings before declaring the
// service ready to take traffic.
//
// Returns:
// - 200 OK if all dependencies are healthy
// - 503 Service Unavailable if any dependency is unhealthy
func (h *Handler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	allHealthy := true

	storeStatus := h.checkStore(r.Context())
	checks["store"] = storeStatus
	if storeStatus != "ok" {
		allHealthy = false
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !allHealthy {
		status = "error"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(response)
}

// checkStore verifies store connectivity with a short ping / Vérifie la connectivité du store avec un ping court
func (h *Handler) checkStore(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.container.Ping(ctx); err != nil {
		return "error"
	}
	return "ok"
}
