package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tranqv/storefront-api/internal/domain"
)

// CreateCategory persists a new category.
func (s *Service) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	category, err := domain.NewCategory(strings.TrimSpace(name), description)
	if err != nil {
		return nil, err
	}
	category.CreatedAt = s.now().UTC()

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// UpdateCategoryInput carries a partial category update; nil fields are
// left unchanged.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
}

// UpdateCategory applies a partial update to an existing category.
func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, in UpdateCategoryInput) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrEmptyName
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes a category. Products referencing it keep their
// dangling reference and are served without a category.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}

// GetCategory retrieves a category by ID.
func (s *Service) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// ListCategories returns all categories.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}
