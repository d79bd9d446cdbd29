package api

import (
	"net/http"

	"github.com/justentropy-lol/entropy-assistant/internal/assistant"
	"github.com/justentropy-lol/entropy-assistant/internal/log"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	store  assistant.DocumentStore
	logger log.Logger
}

// NewHealthHandler creates a new health handler.
// store is the documentation cache used for readiness checks.
func NewHealthHandler(store assistant.DocumentStore, logger log.Logger) *HealthHandler {
	return &HealthHandler{store: store, logger: logger}
}

// RegisterRoutes registers health routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.liveness)
	mux.HandleFunc("GET /ready", h.readiness)
}

// liveness is a liveness probe endpoint.
// Returns 200 OK if the process is alive.
func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readiness is a readiness probe endpoint.
// Returns 200 OK once a documentation snapshot has been loaded. It never
// triggers a fetch itself; a cold cache simply reports not-ready until the
// first question (or a warm-up call) populates it.
func (h *HealthHandler) readiness(w http.ResponseWriter, _ *http.Request) {
	if h.store == nil {
		http.Error(w, "documentation store not configured", http.StatusServiceUnavailable)
		return
	}
	if len(h.store.Documents()) == 0 {
		http.Error(w, "documentation not loaded", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
