package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/tranqv/storefront-api/internal/service/auth"
	"github.com/tranqv/storefront-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService *auth.Service
	validator   *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	session, err := h.authService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, store.ErrEmailExists) {
			slog.Error("failed to register user", "error", err, "email", req.Email)
		}
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		User:   toUserResponse(session.User),
		Tokens: session.Tokens,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		// Same shape as a failed login so the validator cannot be used to
		// probe which part of the credentials was wrong.
		RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Error("failed to log in user", "error", err)
		}
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		User:   toUserResponse(session.User),
		Tokens: session.Tokens,
	})
}

// RefreshToken handles POST /api/auth/refresh-token. Each successful
// call rotates the stored refresh token; replaying the previous one
// fails.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	tokens, err := h.authService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			slog.Error("failed to refresh tokens", "error", err)
		}
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, RefreshTokenResponse{Tokens: *tokens})
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := authUserFromRequest(w, r)
	if !ok {
		return
	}

	profile, err := h.authService.Profile(r.Context(), user.ID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			slog.Error("failed to load profile", "error", err, "user_id", user.ID)
		}
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, toUserResponse(profile))
}
