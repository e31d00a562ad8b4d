// Package auth implements authentication: token issuance and
// verification, password hashing, and the registration/login/refresh
// session flows.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tranqv/storefront-api/internal/domain"
)

// Token lifetimes are fixed by design: a short-lived access token and a
// long-lived refresh token whose rotation is tracked on the user record.
const (
	AccessTokenLifetime  = 24 * time.Hour
	RefreshTokenLifetime = 30 * 24 * time.Hour
)

// Claims is the decoded payload of a verified token. One flat shape is
// used for every authorization check; Role is only populated on access
// tokens.
type Claims struct {
	UserID    uuid.UUID
	Role      domain.Role
	TokenType string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies signed, time-bounded tokens. Tokens
// are stateless and self-contained; the service holds no per-token state
// beyond the signing secret.
type TokenService interface {
	// GenerateAccessToken creates a signed access token embedding the
	// user's ID and role, valid for AccessTokenLifetime.
	GenerateAccessToken(ctx context.Context, userID uuid.UUID, role domain.Role) (string, error)

	// GenerateRefreshToken creates a signed refresh token embedding the
	// user's ID, valid for RefreshTokenLifetime.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateAccessToken verifies signature, expiry and token type.
	// Returns ErrExpiredToken, ErrInvalidToken or ErrWrongTokenType.
	ValidateAccessToken(ctx context.Context, token string) (*Claims, error)

	// ValidateRefreshToken verifies signature, expiry and token type.
	// Returns ErrExpiredRefreshToken, ErrInvalidRefreshToken or
	// ErrWrongTokenType.
	ValidateRefreshToken(ctx context.Context, token string) (*Claims, error)
}
