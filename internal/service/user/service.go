// Package user implements account administration: listing, reading,
// updating and deleting user records with admin-or-self authorization.
package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tranqv/storefront-api/internal/domain"
	"github.com/tranqv/storefront-api/internal/store"
)

// Actor is the identity performing a user management operation.
type Actor struct {
	ID   uuid.UUID
	Role domain.Role
}

func (a Actor) isAdmin() bool { return a.Role == domain.RoleAdmin }

// canAccess reports whether the actor may read or modify the given
// account. Admins may touch any account, everyone else only their own.
func (a Actor) canAccess(id uuid.UUID) bool {
	return a.isAdmin() || a.ID == id
}

// Service implements user account administration on top of a UserStore.
type Service struct {
	users store.UserStore
}

// NewService creates a user Service backed by the given store.
func NewService(users store.UserStore) *Service {
	return &Service{users: users}
}

// List returns all users. Admin only.
func (s *Service) List(ctx context.Context, actor Actor) ([]domain.User, error) {
	if !actor.isAdmin() {
		return nil, domain.ErrUnauthorized
	}
	return s.users.List(ctx)
}

// Get returns a single user. Admins may fetch anyone, users themselves.
func (s *Service) Get(ctx context.Context, actor Actor, id uuid.UUID) (*domain.User, error) {
	if !actor.canAccess(id) {
		return nil, domain.ErrUnauthorized
	}
	return s.users.GetByID(ctx, id)
}

// UpdateInput carries a partial user update; nil fields are unchanged.
type UpdateInput struct {
	Name  *string
	Email *string
	Role  *domain.Role
}

// Update applies a partial update to a user record. Only admins may
// change the role field; for other callers a submitted role is rejected.
func (s *Service) Update(ctx context.Context, actor Actor, id uuid.UUID, in UpdateInput) (*domain.User, error) {
	if !actor.canAccess(id) {
		return nil, domain.ErrUnauthorized
	}
	if in.Role != nil && !actor.isAdmin() {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, domain.ErrInvalidRole
		}
		user.Role = *in.Role
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete removes a user account. Admins may delete anyone, users their
// own account.
func (s *Service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.canAccess(id) {
		return domain.ErrUnauthorized
	}
	return s.users.Delete(ctx, id)
}
