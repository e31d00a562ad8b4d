package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/tranqv/storefront-api/internal/domain"
	"github.com/tranqv/storefront-api/internal/store"
)

// MockCategoryStore implements store.CategoryStore for testing.
type MockCategoryStore struct {
	CreateFn  func(ctx context.Context, category *domain.Category) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	UpdateFn  func(ctx context.Context, category *domain.Category) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error
	ListFn    func(ctx context.Context) ([]domain.Category, error)

	Categories map[uuid.UUID]*domain.Category
}

// NewMockCategoryStore creates a new mock store with initialized defaults.
func NewMockCategoryStore() *MockCategoryStore {
	return &MockCategoryStore{
		Categories: make(map[uuid.UUID]*domain.Category),
	}
}

// Create implements the CategoryStore interface.
func (m *MockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, category)
	}

	for _, existing := range m.Categories {
		if existing.Name == category.Name {
			return store.ErrCategoryNameExists
		}
	}

	clone := *category
	m.Categories[category.ID] = &clone
	return nil
}

// GetByID implements the CategoryStore interface.
func (m *MockCategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	category, exists := m.Categories[id]
	if !exists {
		return nil, store.ErrCategoryNotFound
	}
	clone := *category
	return &clone, nil
}

// Update implements the CategoryStore interface.
func (m *MockCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, category)
	}

	if _, exists := m.Categories[category.ID]; !exists {
		return store.ErrCategoryNotFound
	}
	clone := *category
	m.Categories[category.ID] = &clone
	return nil
}

// Delete implements the CategoryStore interface.
func (m *MockCategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Categories[id]; !exists {
		return store.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// List implements the CategoryStore interface.
func (m *MockCategoryStore) List(ctx context.Context) ([]domain.Category, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	categories := make([]domain.Category, 0, len(m.Categories))
	for _, category := range m.Categories {
		categories = append(categories, *category)
	}
	return categories, nil
}

var _ store.CategoryStore = (*MockCategoryStore)(nil)
