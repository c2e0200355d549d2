package middleware

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Logger injects a request-scoped logger carrying the method, path and
// acting user into the request context.
func Logger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logCtx := logger.With().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", req.RemoteAddr)
			if userID := req.Header.Get("X-User-Id"); userID != "" {
				logCtx = logCtx.Str("user_id", userID)
			}
			reqLogger := logCtx.Logger()

			ctx := reqLogger.WithContext(req.Context())
			req = req.WithContext(ctx)

			next.ServeHTTP(w, req)
		})
	}
}
