package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/tranqv/storefront-api/internal/domain"
	"github.com/tranqv/storefront-api/internal/store"
)

// MockProductStore implements store.ProductStore for testing.
type MockProductStore struct {
	CreateFn    func(ctx context.Context, product *domain.Product) error
	GetByIDFn   func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetByNameFn func(ctx context.Context, name string) (*domain.Product, error)
	UpdateFn    func(ctx context.Context, product *domain.Product) error
	DeleteFn    func(ctx context.Context, id uuid.UUID) error
	ListFn      func(ctx context.Context, page, limit int) (*store.ProductPage, error)
	SearchFn    func(ctx context.Context, q string, limit int) ([]domain.Product, error)

	// Data for the default in-memory implementation.
	Products map[uuid.UUID]*domain.Product
}

// NewMockProductStore creates a new mock store with initialized defaults.
func NewMockProductStore() *MockProductStore {
	return &MockProductStore{
		Products: make(map[uuid.UUID]*domain.Product),
	}
}

// Create implements the ProductStore interface.
func (m *MockProductStore) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, product)
	}

	for _, existing := range m.Products {
		if strings.EqualFold(existing.Name, product.Name) {
			return store.ErrProductNameExists
		}
	}

	clone := *product
	m.Products[product.ID] = &clone
	return nil
}

// GetByID implements the ProductStore interface.
func (m *MockProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	product, exists := m.Products[id]
	if !exists {
		return nil, store.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

// GetByName implements the ProductStore interface. The lookup is
// case-insensitive, matching the collation of the real store.
func (m *MockProductStore) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}

	for _, product := range m.Products {
		if strings.EqualFold(product.Name, name) {
			clone := *product
			return &clone, nil
		}
	}
	return nil, store.ErrProductNotFound
}

// Update implements the ProductStore interface.
func (m *MockProductStore) Update(ctx context.Context, product *domain.Product) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, product)
	}

	if _, exists := m.Products[product.ID]; !exists {
		return store.ErrProductNotFound
	}
	for _, existing := range m.Products {
		if existing.ID != product.ID && strings.EqualFold(existing.Name, product.Name) {
			return store.ErrProductNameExists
		}
	}
	clone := *product
	m.Products[product.ID] = &clone
	return nil
}

// Delete implements the ProductStore interface.
func (m *MockProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Products[id]; !exists {
		return store.ErrProductNotFound
	}
	delete(m.Products, id)
	return nil
}

func (m *MockProductStore) sorted() []domain.Product {
	products := make([]domain.Product, 0, len(m.Products))
	for _, product := range m.Products {
		products = append(products, *product)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products
}

// List implements the ProductStore interface.
func (m *MockProductStore) List(ctx context.Context, page, limit int) (*store.ProductPage, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page, limit)
	}

	products := m.sorted()
	total := int64(len(products))

	start := (page - 1) * limit
	if start > len(products) {
		start = len(products)
	}
	end := start + limit
	if end > len(products) {
		end = len(products)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &store.ProductPage{
		Items:      products[start:end],
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// Search implements the ProductStore interface.
func (m *MockProductStore) Search(ctx context.Context, q string, limit int) ([]domain.Product, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, q, limit)
	}

	q = strings.ToLower(q)
	matches := make([]domain.Product, 0)
	for _, product := range m.sorted() {
		if len(matches) == limit {
			break
		}
		if strings.Contains(strings.ToLower(product.Name), q) ||
			strings.Contains(strings.ToLower(product.Description), q) {
			matches = append(matches, product)
		}
	}
	return matches, nil
}

var _ store.ProductStore = (*MockProductStore)(nil)
