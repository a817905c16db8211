package middleware

import (
	"net/http"
	"strings"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/pkg/logger"
)

const TechnicianHeader = "X-Technician"

// Technician records the X-Technician header on the request context. Services fall back to the
// configured default technician when it is absent.
func Technician(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		technician := strings.TrimSpace(r.Header.Get(TechnicianHeader))
		if technician == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := internal.ContextWithTechnician(r.Context(), technician)
		ctx = logger.With(ctx, "technician", technician)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
