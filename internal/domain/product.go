package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultUnit is applied when a product is created without a unit.
const DefaultUnit = "piece"

// ValidUnits is the fixed set of sale units a product may carry.
var ValidUnits = []string{
	"piece", "box", "kg", "pair", "roll", "jar", "set",
	"bag", "can", "bottle", "carton", "pack", "meter", "liter", "dozen",
}

// ValidUnit reports whether unit is a member of ValidUnits.
func ValidUnit(unit string) bool {
	for _, u := range ValidUnits {
		if u == unit {
			return true
		}
	}
	return false
}

// Image identifies an uploaded product image on the media host.
type Image struct {
	URL     string `json:"url"`
	AssetID string `json:"asset_id"`
}

// Product is a catalog entry. Name is unique across the catalog,
// compared case-insensitively.
type Product struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	ImportPrice float64    `json:"import_price"`
	Unit        string     `json:"unit"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Image       *Image     `json:"image"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewProduct creates a catalog entry with normalized fields: unit
// defaults to DefaultUnit, description defaults to the product name,
// import price defaults to zero (already the zero value).
func NewProduct(name string, price float64) (*Product, error) {
	p := &Product{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Price:     price,
		Unit:      DefaultUnit,
		CreatedAt: time.Now().UTC(),
	}
	p.Description = p.Name

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks that the product has valid data.
func (p *Product) Validate() error {
	if p.ID == uuid.Nil {
		return ErrInvalidID
	}

	if p.Name == "" {
		return ErrEmptyName
	}

	if p.Price <= 0 {
		return ErrInvalidPrice
	}

	if p.Unit != "" && !ValidUnit(p.Unit) {
		return ErrInvalidUnit
	}

	return nil
}
