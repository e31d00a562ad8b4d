// Package mocks provides hand-rolled fakes of the store and service
// interfaces for tests.
package mocks

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/tranqv/storefront-api/internal/domain"
	"github.com/tranqv/storefront-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn             func(ctx context.Context, user *domain.User) error
	GetByEmailFn         func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFn            func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByRefreshTokenFn  func(ctx context.Context, token string) (*domain.User, error)
	UpdateRefreshTokenFn func(ctx context.Context, id uuid.UUID, token string) error
	UpdateFn             func(ctx context.Context, user *domain.User) error
	DeleteFn             func(ctx context.Context, id uuid.UUID) error
	ListFn               func(ctx context.Context) ([]domain.User, error)

	// Data for the default in-memory implementation, keyed by email.
	Users map[string]*domain.User
}

// NewMockUserStore creates a new mock store with initialized defaults.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// Create implements the UserStore interface.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if _, exists := m.Users[user.Email]; exists {
		return store.ErrEmailExists
	}

	clone := *user
	m.Users[user.Email] = &clone
	return nil
}

// GetByEmail implements the UserStore interface.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	user, exists := m.Users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	clone := *user
	return &clone, nil
}

// GetByID implements the UserStore interface.
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, user := range m.Users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByRefreshToken implements the UserStore interface.
func (m *MockUserStore) GetByRefreshToken(ctx context.Context, token string) (*domain.User, error) {
	if m.GetByRefreshTokenFn != nil {
		return m.GetByRefreshTokenFn(ctx, token)
	}

	if token == "" {
		return nil, store.ErrUserNotFound
	}
	for _, user := range m.Users {
		if user.RefreshToken == token {
			clone := *user
			return &clone, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// UpdateRefreshToken implements the UserStore interface.
func (m *MockUserStore) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	if m.UpdateRefreshTokenFn != nil {
		return m.UpdateRefreshTokenFn(ctx, id, token)
	}

	for _, user := range m.Users {
		if user.ID == id {
			user.RefreshToken = token
			return nil
		}
	}
	return store.ErrUserNotFound
}

// Update implements the UserStore interface.
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	for email, existing := range m.Users {
		if existing.ID == user.ID {
			if email != user.Email {
				if _, taken := m.Users[user.Email]; taken {
					return store.ErrEmailExists
				}
				delete(m.Users, email)
			}
			clone := *user
			m.Users[user.Email] = &clone
			return nil
		}
	}
	return store.ErrUserNotFound
}

// Delete implements the UserStore interface.
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	for email, user := range m.Users {
		if user.ID == id {
			delete(m.Users, email)
			return nil
		}
	}
	return store.ErrUserNotFound
}

// List implements the UserStore interface.
func (m *MockUserStore) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	users := make([]domain.User, 0, len(m.Users))
	for _, user := range m.Users {
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

var _ store.UserStore = (*MockUserStore)(nil)
