package middleware

import (
	"net/http"

	"github.com/tranqv/storefront-api/internal/api/shared"
)

// Trace assigns every request a trace ID so error responses can be
// correlated with log lines.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
