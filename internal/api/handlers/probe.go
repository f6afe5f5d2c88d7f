package handlers

import (
	"context"
	"net/http"
	"time"
)

const defaultReadyTimeout = 5 * time.Second

// BackendProber is the slice of backend.Client the probes need.
type BackendProber interface {
	BaseURL() string
	HealthCheck(ctx context.Context) error
}

type ProbeHandler struct {
	backend      BackendProber
	readyTimeout time.Duration
}

func NewProbeHandler(backend BackendProber) *ProbeHandler {
	return &ProbeHandler{backend: backend, readyTimeout: defaultReadyTimeout}
}

// Root answers GET / with a plain liveness string.
func (h *ProbeHandler) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("MCP server OK"))
}

// Health reports process liveness and the configured backend. It never calls
// the backend.
func (h *ProbeHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"backend": h.backend.BaseURL(),
	})
}

// Ready reports whether the backend answers its own health endpoint.
func (h *ProbeHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.readyTimeout)
	defer cancel()

	if err := h.backend.HealthCheck(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"ready":   false,
			"backend": h.backend.BaseURL(),
			"error":   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ready":   true,
		"backend": h.backend.BaseURL(),
	})
}
