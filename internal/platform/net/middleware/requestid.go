// Package middleware holds adapters and in house middlewares
package middleware

import (
	"net/http"

	"gearbox/internal/platform/logger"
	pnet "gearbox/internal/platform/net"

	"github.com/google/uuid"
)

// RequestID propagates X-Request-ID or mints a fresh uuid, stores it on the
// request context, and mirrors it on the response header
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get("X-Request-ID")
			if reqID == "" {
				reqID = uuid.NewString()
			}
			ctx := pnet.WithRequestID(r.Context(), reqID)
			ctx = logger.WithRequest(ctx, reqID)
			w.Header().Set("X-Request-ID", reqID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
