// Package health exposes the readiness endpoint over the configured backends.
package health

import (
	"context"
	"log/slog"
	"net/http"
)

// Check reports whether a single backend is reachable.
type Check func(ctx context.Context) error

// Handler answers 200 when every check passes and 503 on the first failure.
func Handler(logger *slog.Logger, checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				logger.ErrorContext(r.Context(), "health check failed", "error", err.Error())
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
