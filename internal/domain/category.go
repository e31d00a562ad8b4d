package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category groups catalog products. Name is unique.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCategory creates a category with the given name and description.
func NewCategory(name, description string) (*Category, error) {
	c := &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	if c.Name == "" {
		return nil, ErrEmptyName
	}

	return c, nil
}
