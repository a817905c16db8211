package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus   `json:"status"`
	Message    string         `json:"message,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	CheckedAt  time.Time      `json:"checked_at"`
	DurationMs int64          `json:"duration_ms"`
}

// ClientCounter reports connected realtime clients.
type ClientCounter interface {
	ClientCount() int
}

type HealthHandler struct {
	db       *sqlx.DB
	realtime ClientCounter
}

// NewHealthHandler checks db on every readiness probe. realtime may be nil when the change feed
// is disabled.
func NewHealthHandler(db *sqlx.DB, realtime ClientCounter) *HealthHandler {
	return &HealthHandler{db: db, realtime: realtime}
}

// pingHandler is the liveness probe
func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "OK"}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// healthCheckHandler is the readiness probe; only the database decides the overall status
func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)

	entry := CheckEntry{
		Status:     HealthHealthy,
		CheckedAt:  time.Now(),
		DurationMs: time.Since(start).Milliseconds(),
		Details: map[string]any{
			"open_connections": h.db.Stats().OpenConnections,
			"in_use":           h.db.Stats().InUse,
		},
	}

	if err != nil {
		entry.Status = HealthUnhealthy
		entry.Message = err.Error()
	}

	resp := HealthResponse{
		Status:     entry.Status,
		CheckedAt:  time.Now(),
		Components: map[string]CheckEntry{"postgres": entry},
	}

	if h.realtime != nil {
		resp.Components["realtime"] = CheckEntry{
			Status:    HealthHealthy,
			CheckedAt: time.Now(),
			Details:   map[string]any{"clients": h.realtime.ClientCount()},
		}
	}

	statusCode := http.StatusOK
	if entry.Status == HealthUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}
