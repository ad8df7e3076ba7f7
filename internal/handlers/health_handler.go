package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/jamapp/jam-admin/internal/logging"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports readiness. It answers 503 until MarkReady is called
// and whenever the database stops answering.
type HealthHandler struct {
	ready  *atomic.Bool
	db     Pinger
	logger zerolog.Logger
}

// HealthResponse is the JSON body of the health endpoint
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{
		ready:  atomic.NewBool(false),
		db:     db,
		logger: logging.GetLogger("health-handler"),
	}
}

// MarkReady flags startup as completed
func (h *HealthHandler) MarkReady() {
	h.ready.Store(true)
}

// MarkNotReady flags the service as shutting down
func (h *HealthHandler) MarkNotReady() {
	h.ready.Store(false)
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.handleHealth)
}

func (h *HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	status := http.StatusOK

	if !h.ready.Load() {
		resp.Status = "starting"
		status = http.StatusServiceUnavailable
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn().Err(err).Msg("Database ping failed")
			resp.Status = "unavailable"
			resp.Database = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			resp.Database = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error().Err(err).Msg("Failed to write health response")
	}
}
