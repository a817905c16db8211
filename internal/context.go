package internal

import (
	"context"
	"strings"
	"time"
)

type ctxKey string

const ContextTechnicianKey ctxKey = "technician"

// TechnicianFromContext returns the technician recorded on the request, or fallback when none
// was supplied.
func TechnicianFromContext(ctx context.Context, fallback string) string {
	if ctx == nil {
		return fallback
	}
	if technician, ok := ctx.Value(ContextTechnicianKey).(string); ok && strings.TrimSpace(technician) != "" {
		return technician
	}
	return fallback
}

func ContextWithTechnician(ctx context.Context, technician string) context.Context {
	return context.WithValue(ctx, ContextTechnicianKey, technician)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
