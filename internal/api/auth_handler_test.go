package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranqv/storefront-api/internal/api"
	"github.com/tranqv/storefront-api/internal/domain"
)

func TestRegisterEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.AuthResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, domain.RoleUser, resp.User.Role)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)

	// The raw body must never contain credential material.
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "hashed")
}

func TestRegisterEndpoint_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing email", map[string]string{"name": "A", "password": "long enough pw"}},
		{"bad email", map[string]string{"name": "A", "email": "nope", "password": "long enough pw"}},
		{"short password", map[string]string{"name": "A", "email": "a@example.com", "password": "short"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.doJSON(t, http.MethodPost, "/api/auth/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "correct horse battery",
	}
	rec := env.doJSON(t, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already exists")
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.AuthResponse
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"wrong password", map[string]string{"email": "alice@example.com", "password": "wrong"}},
		{"unknown email", map[string]string{"email": "nobody@example.com", "password": "correct horse battery"}},
		{"invalid email shape", map[string]string{"email": "nope", "password": "whatever"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.doJSON(t, http.MethodPost, "/api/auth/login", "", tc.body)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "Invalid credentials")
		})
	}
}

func TestRefreshTokenEndpoint_Rotation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered api.AuthResponse
	decodeBody(t, rec, &registered)
	first := registered.Tokens.RefreshToken

	rec = env.doJSON(t, http.MethodPost, "/api/auth/refresh-token", "", map[string]string{
		"refresh_token": first,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var refreshed api.RefreshTokenResponse
	decodeBody(t, rec, &refreshed)
	assert.NotEqual(t, first, refreshed.Tokens.RefreshToken)

	// Replaying the superseded token is rejected.
	rec = env.doJSON(t, http.MethodPost, "/api/auth/refresh-token", "", map[string]string{
		"refresh_token": first,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid refresh token")
}

func TestRefreshTokenEndpoint_Missing(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/auth/refresh-token", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Refresh token is required")
}

func TestProfileEndpoint(t *testing.T) {
	env := newTestEnv(t)

	alice, token := env.seedUser(t, "Alice", "alice@example.com", domain.RoleUser)

	rec := env.doJSON(t, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.UserResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, alice.ID, resp.ID)
	assert.Equal(t, "alice@example.com", resp.Email)
}

func TestProfileEndpoint_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileEndpoint_UserDeleted(t *testing.T) {
	env := newTestEnv(t)

	alice, token := env.seedUser(t, "Alice", "alice@example.com", domain.RoleUser)
	require.NoError(t, env.users.Delete(context.Background(), alice.ID))

	rec := env.doJSON(t, http.MethodGet, "/api/auth/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
