package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// readinessTimeout bounds the API server probe performed by the readiness
// endpoint.
const readinessTimeout = 5 * time.Second

// HealthChecker provides health check endpoints for the HTTP transports.
type HealthChecker struct {
	serverContext *ServerContext
	startTime     time.Time
}

// NewHealthChecker creates a new HealthChecker.
func NewHealthChecker(sc *ServerContext) *HealthChecker {
	return &HealthChecker{
		serverContext: sc,
		startTime:     time.Now(),
	}
}

// HealthResponse represents the JSON response for health endpoints.
type HealthResponse struct {
	Status string            `json:"status"`
	Uptime string            `json:"uptime,omitempty"`
	Checks map[string]string `json:"checks,omitempty"`
}

// LivenessHandler returns an HTTP handler for the /healthz endpoint.
// If the process can respond at all, it is alive.
func (h *HealthChecker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeHealthResponse(w, http.StatusOK, HealthResponse{
			Status: "ok",
			Uptime: time.Since(h.startTime).Round(time.Second).String(),
		})
	})
}

// ReadinessHandler returns an HTTP handler for the /readyz endpoint. The
// server is ready when the API server of the active context responds.
func (h *HealthChecker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		status := http.StatusOK

		if _, err := h.serverContext.K8sClient().ServerVersion(ctx); err != nil {
			checks["kubernetes"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks["kubernetes"] = "ok"
		}

		state := "ok"
		if status != http.StatusOK {
			state = "unavailable"
		}
		writeHealthResponse(w, status, HealthResponse{Status: state, Checks: checks})
	})
}

// RegisterHealthEndpoints attaches the health handlers to mux.
func (h *HealthChecker) RegisterHealthEndpoints(mux *http.ServeMux) {
	mux.Handle("/healthz", h.LivenessHandler())
	mux.Handle("/readyz", h.ReadinessHandler())
}

func writeHealthResponse(w http.ResponseWriter, status int, response HealthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}
