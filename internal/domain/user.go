package domain

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// Role restricts what a user may do. New users default to RoleUser;
// RoleAdmin unlocks catalog and user management endpoints.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered account of the admin backend.
//
// RefreshToken holds the single currently-valid refresh token for this
// user. Every successful login or refresh overwrites it, which is what
// invalidates previously issued refresh tokens.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // plaintext, only set between request decode and hashing
	HashedPassword string    `json:"-"` // never exposed in JSON
	Role           Role      `json:"role"`
	RefreshToken   string    `json:"-"` // never exposed in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a new User with the given name, email and plaintext
// password. The caller is responsible for hashing the password before
// the user is stored. Role defaults to RoleUser.
func NewUser(name, email, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Password:  password,
		Role:      RoleUser,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks that the user has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrInvalidID
	}

	if u.Name == "" {
		return ErrEmptyName
	}

	if _, err := mail.ParseAddress(u.Email); err != nil {
		return ErrInvalidEmail
	}

	if !u.Role.Valid() {
		return ErrInvalidRole
	}

	if u.Password != "" {
		if len(u.Password) < 8 {
			return ErrPasswordTooShort
		}
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Existing users loaded from the store must carry a hash.
		return ErrEmptyPassword
	}

	return nil
}
