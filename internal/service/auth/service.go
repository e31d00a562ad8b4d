package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tranqv/storefront-api/internal/domain"
	"github.com/tranqv/storefront-api/internal/store"
)

// TokenPair is an access/refresh token pair issued together.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Session is the result of a successful registration or login.
type Session struct {
	User   *domain.User
	Tokens TokenPair
}

// PasswordService combines hashing and verification; BcryptHasher
// satisfies both sides.
type PasswordService interface {
	PasswordHasher
	PasswordVerifier
}

// Service orchestrates the credential store and token service for the
// session flows. Each user stores exactly one live refresh token: every
// successful login or refresh overwrites it, so a stale refresh token is
// rejected immediately even before it expires. Multi-device refresh
// chains are out of scope for this design.
type Service struct {
	users     store.UserStore
	tokens    TokenService
	passwords PasswordService
}

// NewService creates an auth Service with the given dependencies.
func NewService(users store.UserStore, tokens TokenService, passwords PasswordService) *Service {
	return &Service{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
	}
}

// Register creates a new user account with role "user", stores the
// bcrypt hash of the password and issues the first token pair.
// Returns store.ErrEmailExists when the email is already registered.
func (s *Service) Register(ctx context.Context, name, email, password string) (*Session, error) {
	user, err := domain.NewUser(name, email, password)
	if err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hash
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.startSession(ctx, user)
}

// Login verifies the credentials and issues a fresh token pair,
// overwriting the stored refresh token and thereby invalidating the
// previous one. Unknown email and wrong password both return
// ErrInvalidCredentials so callers cannot probe for registered emails.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.passwords.Compare(user.HashedPassword, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.startSession(ctx, user)
}

// RefreshTokens exchanges a refresh token for a new token pair and
// rotates the stored refresh token; replaying the presented token after
// a successful call fails with ErrUnknownRefreshToken.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrMissingToken
	}

	// Stored-token lookup comes first: a rotated-out token is rejected
	// regardless of its cryptographic validity.
	user, err := s.users.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUnknownRefreshToken
		}
		return nil, err
	}

	if _, err := s.tokens.ValidateRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	session, err := s.startSession(ctx, user)
	if err != nil {
		return nil, err
	}
	return &session.Tokens, nil
}

// Profile returns the user record for an authenticated user ID.
// The password hash and refresh token never leave this package's
// callers: both carry `json:"-"` on the domain type.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// startSession issues a new token pair and persists the refresh token
// onto the user record.
func (s *Service) startSession(ctx context.Context, user *domain.User) (*Session, error) {
	accessToken, err := s.tokens.GenerateAccessToken(ctx, user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}
	user.RefreshToken = refreshToken

	return &Session{
		User: user,
		Tokens: TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}
