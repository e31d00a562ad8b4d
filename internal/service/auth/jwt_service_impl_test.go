package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranqv/storefront-api/internal/config"
	"github.com/tranqv/storefront-api/internal/domain"
)

const testSecret = "test-secret-that-is-at-least-32-chars!!"

func newTestTokenService(t *testing.T, now time.Time) *hmacTokenService {
	t.Helper()

	svc, err := NewTokenService(config.AuthConfig{JWTSecret: testSecret})
	require.NoError(t, err)

	impl := svc.(*hmacTokenService)
	impl.timeFunc = func() time.Time { return now }
	return impl
}

func TestNewTokenService_RejectsShortSecret(t *testing.T) {
	_, err := NewTokenService(config.AuthConfig{JWTSecret: "too-short"})
	assert.Error(t, err)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	svc := newTestTokenService(t, now)

	userID := uuid.New()
	token, err := svc.GenerateAccessToken(ctx, userID, domain.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "access", claims.TokenType)
	assert.WithinDuration(t, now.Add(AccessTokenLifetime), claims.ExpiresAt, time.Second)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	svc := newTestTokenService(t, now)

	userID := uuid.New()
	token, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Empty(t, claims.Role)
	assert.Equal(t, "refresh", claims.TokenType)
	assert.WithinDuration(t, now.Add(RefreshTokenLifetime), claims.ExpiresAt, time.Second)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	ctx := context.Background()
	issuedAt := time.Now()
	svc := newTestTokenService(t, issuedAt)

	token, err := svc.GenerateAccessToken(ctx, uuid.New(), domain.RoleUser)
	require.NoError(t, err)

	// Move past the lifetime plus the clock skew leeway.
	svc.timeFunc = func() time.Time {
		return issuedAt.Add(AccessTokenLifetime + 3*time.Minute)
	}

	_, err = svc.ValidateAccessToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateRefreshToken_Expired(t *testing.T) {
	ctx := context.Background()
	issuedAt := time.Now()
	svc := newTestTokenService(t, issuedAt)

	token, err := svc.GenerateRefreshToken(ctx, uuid.New())
	require.NoError(t, err)

	svc.timeFunc = func() time.Time {
		return issuedAt.Add(RefreshTokenLifetime + 3*time.Minute)
	}

	_, err = svc.ValidateRefreshToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
}

func TestValidate_WithinClockSkew(t *testing.T) {
	ctx := context.Background()
	issuedAt := time.Now()
	svc := newTestTokenService(t, issuedAt)

	token, err := svc.GenerateAccessToken(ctx, uuid.New(), domain.RoleUser)
	require.NoError(t, err)

	// Just past expiry but inside the two-minute leeway.
	svc.timeFunc = func() time.Time {
		return issuedAt.Add(AccessTokenLifetime + time.Minute)
	}

	_, err = svc.ValidateAccessToken(ctx, token)
	assert.NoError(t, err)
}

func TestValidate_WrongTokenType(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(t, time.Now())

	accessToken, err := svc.GenerateAccessToken(ctx, uuid.New(), domain.RoleUser)
	require.NoError(t, err)
	refreshToken, err := svc.GenerateRefreshToken(ctx, uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(ctx, accessToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateAccessToken(ctx, refreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidate_TamperedToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(t, time.Now())

	token, err := svc.GenerateAccessToken(ctx, uuid.New(), domain.RoleUser)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	_, err = svc.ValidateAccessToken(ctx, tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_DifferentSigningKey(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	svc := newTestTokenService(t, now)

	other, err := NewTokenService(config.AuthConfig{
		JWTSecret: "another-secret-that-is-32-chars-long!!!!",
	})
	require.NoError(t, err)
	otherImpl := other.(*hmacTokenService)
	otherImpl.timeFunc = func() time.Time { return now }

	token, err := otherImpl.GenerateAccessToken(ctx, uuid.New(), domain.RoleUser)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Garbage(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(t, time.Now())

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not a jwt", "not-a-jwt"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(ctx, tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
