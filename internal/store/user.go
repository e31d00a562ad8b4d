package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/tranqv/storefront-api/internal/domain"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	// Create saves a new user. The user must already carry a hashed
	// password. Returns ErrEmailExists if the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByRefreshToken retrieves the user whose record currently stores
	// exactly this refresh token. Returns ErrUserNotFound if no record
	// does; a superseded token therefore no longer resolves to a user.
	GetByRefreshToken(ctx context.Context, token string) (*domain.User, error)

	// UpdateRefreshToken overwrites the stored refresh token for the
	// user, invalidating whatever token was stored before. Relies on the
	// store's per-document atomicity; no additional locking.
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error

	// Update modifies an existing user's details.
	// Returns ErrUserNotFound if the user does not exist and
	// ErrEmailExists when updating to a taken email.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user permanently.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all users, newest first.
	List(ctx context.Context) ([]domain.User, error)
}
