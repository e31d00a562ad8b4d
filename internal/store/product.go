package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/tranqv/storefront-api/internal/domain"
)

// ProductPage is one page of a product listing.
type ProductPage struct {
	Items      []domain.Product
	Total      int64
	Page       int
	TotalPages int
}

// ProductStore defines the interface for catalog persistence.
type ProductStore interface {
	// Create saves a new product.
	// Returns ErrProductNameExists if a product with the same name
	// (case-insensitive) already exists.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID.
	// Returns ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// GetByName retrieves a product by name, compared case-insensitively.
	// Returns ErrProductNotFound if no product matches.
	GetByName(ctx context.Context, name string) (*domain.Product, error)

	// Update modifies an existing product.
	// Returns ErrProductNotFound if the product does not exist.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product permanently.
	// Returns ErrProductNotFound if the product does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of products, newest first.
	List(ctx context.Context, page, limit int) (*ProductPage, error)

	// Search returns up to limit products whose name or description
	// contains q, case-insensitively.
	Search(ctx context.Context, q string, limit int) ([]domain.Product, error)
}
