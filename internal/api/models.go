package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/tranqv/storefront-api/internal/domain"
	"github.com/tranqv/storefront-api/internal/service/auth"
	"github.com/tranqv/storefront-api/internal/service/catalog"
)

// Common request/response structures.

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UserResponse is the client-visible shape of a user: never the password
// hash, never the stored refresh token.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse is the successful response of register and login.
type AuthResponse struct {
	User   UserResponse   `json:"user"`
	Tokens auth.TokenPair `json:"tokens"`
}

// RefreshTokenResponse is the successful response of the refresh endpoint.
type RefreshTokenResponse struct {
	Tokens auth.TokenPair `json:"tokens"`
}

// UpdateUserRequest defines a partial user update; nil fields are left
// unchanged. Role changes are ignored unless the caller is an admin.
type UpdateUserRequest struct {
	Name  *string      `json:"name,omitempty"`
	Email *string      `json:"email,omitempty"  validate:"omitempty,email"`
	Role  *domain.Role `json:"role,omitempty"`
}

// CreateCategoryRequest defines the payload for category creation.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest defines a partial category update.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// BulkImportRequest defines the payload for the bulk product import.
type BulkImportRequest struct {
	Products []catalog.ImportItem `json:"products" validate:"required"`
}

// ProductResponse is a product joined with its category, when assigned.
type ProductResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	ImportPrice float64          `json:"import_price"`
	Unit        string           `json:"unit"`
	Category    *domain.Category `json:"category,omitempty"`
	Image       *domain.Image    `json:"image,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

func toProductResponse(p *domain.Product, c *domain.Category) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImportPrice: p.ImportPrice,
		Unit:        p.Unit,
		Category:    c,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
	}
}

// ProductListResponse is one page of the product listing.
type ProductListResponse struct {
	Data        []domain.Product `json:"data"`
	Total       int64            `json:"total"`
	CurrentPage int              `json:"current_page"`
	TotalPages  int              `json:"total_pages"`
}
