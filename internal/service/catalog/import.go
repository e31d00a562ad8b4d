// Package catalog implements product management: CRUD with image
// lifecycle against the media host, and the bulk import pipeline.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/tranqv/storefront-api/internal/domain"
	"github.com/tranqv/storefront-api/internal/store"
)

// Import outcome classification. Callers map these to HTTP statuses
// (201 for a fully successful batch, 207 for a partial one).
const (
	OutcomeSuccess = "success"
	OutcomePartial = "partial"
)

// ImportItem is one entry of a bulk import request.
type ImportItem struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit,omitempty"`
	Description string  `json:"description,omitempty"`
	ImportPrice float64 `json:"import_price,omitempty"`
}

// ImportFailure carries a rejected item's original fields plus the
// reason it was rejected.
type ImportFailure struct {
	ImportItem
	Error string `json:"error"`
}

// ImportReport aggregates the per-item outcomes of one batch.
type ImportReport struct {
	Outcome      string           `json:"status"`
	SuccessCount int              `json:"success_count"`
	FailedCount  int              `json:"failed_count"`
	Imported     []domain.Product `json:"data"`
	Failed       []ImportFailure  `json:"failed_products,omitempty"`
}

// Import validates and persists a batch of catalog entries, producing a
// partial-success report. Items are processed strictly in order and in
// isolation: a failed item never aborts the batch and nothing rolls back
// previously committed items. No transaction spans the batch.
func (s *Service) Import(ctx context.Context, items []ImportItem) (*ImportReport, error) {
	report := &ImportReport{
		Imported: []domain.Product{},
	}

	for _, item := range items {
		product, reason := s.importOne(ctx, item)
		if reason != "" {
			report.Failed = append(report.Failed, ImportFailure{ImportItem: item, Error: reason})
			continue
		}
		report.Imported = append(report.Imported, *product)
	}

	report.SuccessCount = len(report.Imported)
	report.FailedCount = len(report.Failed)
	report.Outcome = OutcomeSuccess
	if report.FailedCount > 0 {
		report.Outcome = OutcomePartial
	}

	slog.Info("bulk import finished",
		"success_count", report.SuccessCount,
		"failed_count", report.FailedCount,
		"outcome", report.Outcome)

	return report, nil
}

// importOne validates and persists a single item. A non-empty reason
// means the item was rejected; unexpected persistence failures are
// folded into the reason so the caller keeps processing.
func (s *Service) importOne(ctx context.Context, item ImportItem) (*domain.Product, string) {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		return nil, "missing product name"
	}

	if item.Price <= 0 {
		return nil, "price must be a positive number"
	}

	if item.Unit != "" && !domain.ValidUnit(item.Unit) {
		return nil, "invalid unit \"" + item.Unit + "\", valid units: " +
			strings.Join(domain.ValidUnits, ", ")
	}

	// Duplicate check is case-insensitive against the existing catalog.
	_, err := s.products.GetByName(ctx, name)
	if err == nil {
		return nil, "product name already exists"
	}
	if !errors.Is(err, store.ErrProductNotFound) {
		slog.Error("bulk import: duplicate check failed", "error", err, "name", name)
		return nil, err.Error()
	}

	product := &domain.Product{
		ID:          uuid.New(),
		Name:        name,
		Price:       item.Price,
		Unit:        item.Unit,
		Description: item.Description,
		ImportPrice: item.ImportPrice,
		CreatedAt:   s.now(),
	}
	if product.Unit == "" {
		product.Unit = domain.DefaultUnit
	}
	if product.Description == "" {
		product.Description = product.Name
	}

	if err := s.products.Create(ctx, product); err != nil {
		slog.Error("bulk import: persist failed", "error", err, "name", name)
		return nil, err.Error()
	}

	return product, ""
}
