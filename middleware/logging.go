package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// Logging logs each API call using slog. Credentials and the session
// token are never logged.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		next = transport(next)
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			ctx := r.Context()
			action := Action(r.URL.Path)
			start := time.Now()

			logger.DebugContext(ctx, "request started",
				slog.String("method", r.Method),
				slog.String("action", action),
			)

			resp, err := next.RoundTrip(r)
			duration := time.Since(start)

			switch {
			case err != nil:
				logger.ErrorContext(ctx, "request failed",
					slog.String("method", r.Method),
					slog.String("action", action),
					slog.Duration("duration", duration),
					slog.Any("error", err),
				)
			case resp.StatusCode >= 400:
				logger.WarnContext(ctx, "request rejected",
					slog.String("method", r.Method),
					slog.String("action", action),
					slog.Int("status", resp.StatusCode),
					slog.Duration("duration", duration),
				)
			default:
				logger.InfoContext(ctx, "request completed",
					slog.String("method", r.Method),
					slog.String("action", action),
					slog.Int("status", resp.StatusCode),
					slog.Duration("duration", duration),
				)
			}
			return resp, err
		})
	}
}
