package mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tranqv/storefront-api/internal/domain"
	"github.com/tranqv/storefront-api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing. The default
// implementation issues transparent tokens of the form
// "access:<uuid>:<role>:<n>" / "refresh:<uuid>:<n>" so tests can assert
// rotation without parsing JWTs.
type MockTokenService struct {
	GenerateAccessTokenFn  func(ctx context.Context, userID uuid.UUID, role domain.Role) (string, error)
	GenerateRefreshTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateAccessTokenFn  func(ctx context.Context, token string) (*auth.Claims, error)
	ValidateRefreshTokenFn func(ctx context.Context, token string) (*auth.Claims, error)

	issued int
}

// NewMockTokenService creates a new mock token service.
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken implements the TokenService interface.
func (m *MockTokenService) GenerateAccessToken(ctx context.Context, userID uuid.UUID, role domain.Role) (string, error) {
	if m.GenerateAccessTokenFn != nil {
		return m.GenerateAccessTokenFn(ctx, userID, role)
	}
	m.issued++
	return fmt.Sprintf("access:%s:%s:%d", userID, role, m.issued), nil
}

// GenerateRefreshToken implements the TokenService interface.
func (m *MockTokenService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateRefreshTokenFn != nil {
		return m.GenerateRefreshTokenFn(ctx, userID)
	}
	m.issued++
	return fmt.Sprintf("refresh:%s:%d", userID, m.issued), nil
}

// ValidateAccessToken implements the TokenService interface.
func (m *MockTokenService) ValidateAccessToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateAccessTokenFn != nil {
		return m.ValidateAccessTokenFn(ctx, token)
	}

	parts := strings.Split(token, ":")
	if len(parts) != 4 || parts[0] != "access" {
		return nil, auth.ErrInvalidToken
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{
		UserID:    id,
		Role:      domain.Role(parts[2]),
		TokenType: "access",
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(auth.AccessTokenLifetime),
	}, nil
}

// ValidateRefreshToken implements the TokenService interface.
func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, token)
	}

	parts := strings.Split(token, ":")
	if len(parts) != 3 || parts[0] != "refresh" {
		return nil, auth.ErrInvalidRefreshToken
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, auth.ErrInvalidRefreshToken
	}
	return &auth.Claims{
		UserID:    id,
		TokenType: "refresh",
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(auth.RefreshTokenLifetime),
	}, nil
}

var _ auth.TokenService = (*MockTokenService)(nil)
