// Package middleware provides the request authentication and
// authorization gates.
package middleware

import (
	"net/http"
	"strings"

	"github.com/tranqv/storefront-api/internal/api/shared"
	"github.com/tranqv/storefront-api/internal/domain"
	"github.com/tranqv/storefront-api/internal/service/auth"
)

// AuthMiddleware provides bearer-token authentication for routes.
type AuthMiddleware struct {
	tokens auth.TokenService
}

// NewAuthMiddleware creates an AuthMiddleware with the given token service.
func NewAuthMiddleware(tokens auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate validates the bearer token from the Authorization header
// and attaches the decoded payload to the request context. It must run
// before any handler that reads the authenticated identity. Every
// verification failure is answered 401; no distinction beyond
// invalid/expired is surfaced to the client.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.tokens.ValidateAccessToken(r.Context(), parts[1])
		if err != nil {
			switch err {
			case auth.ErrExpiredToken:
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			default:
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		ctx := shared.WithAuthUser(r.Context(), shared.AuthenticatedUser{
			ID:   claims.UserID,
			Role: claims.Role,
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin is the second-stage role gate for routes that declare an
// admin requirement. It assumes Authenticate already ran.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := shared.AuthUserFrom(r.Context())
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		if user.Role != domain.RoleAdmin {
			shared.RespondWithError(w, r, http.StatusForbidden, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
