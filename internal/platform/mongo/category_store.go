package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tranqv/storefront-api/internal/domain"
	"github.com/tranqv/storefront-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

type categoryDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	CreatedAt   time.Time `bson:"created_at"`
}

func toCategoryDoc(c *domain.Category) categoryDoc {
	return categoryDoc{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.UTC(),
	}
}

func (d categoryDoc) toDomain() (*domain.Category, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("category document %q: bad id: %w", d.ID, err)
	}

	return &domain.Category{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt.UTC(),
	}, nil
}

type categoryStore struct{ m *Mongo }

// Categories returns the CategoryStore backed by this connection.
func (m *Mongo) Categories() store.CategoryStore {
	return &categoryStore{m: m}
}

var _ store.CategoryStore = (*categoryStore)(nil)

// Create saves a new category.
func (s *categoryStore) Create(ctx context.Context, category *domain.Category) error {
	const op = "mongo.categories.Create"

	if _, err := s.m.categories.InsertOne(ctx, toCategoryDoc(category)); err != nil {
		if isDuplicateKey(err) {
			return store.ErrCategoryNameExists
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetByID retrieves a category by ID.
func (s *categoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	const op = "mongo.categories.GetByID"

	var doc categoryDoc
	if err := s.m.categories.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, store.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return doc.toDomain()
}

// Update replaces an existing category document.
func (s *categoryStore) Update(ctx context.Context, category *domain.Category) error {
	const op = "mongo.categories.Update"

	res, err := s.m.categories.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: category.ID.String()}},
		toCategoryDoc(category))
	if err != nil {
		if isDuplicateKey(err) {
			return store.ErrCategoryNameExists
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return store.ErrCategoryNotFound
	}

	return nil
}

// Delete removes a category permanently.
func (s *categoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "mongo.categories.Delete"

	res, err := s.m.categories.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return store.ErrCategoryNotFound
	}

	return nil
}

// List returns all categories.
func (s *categoryStore) List(ctx context.Context) ([]domain.Category, error) {
	const op = "mongo.categories.List"

	cur, err := s.m.categories.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var categories []domain.Category
	for cur.Next(ctx) {
		var doc categoryDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		c, err := doc.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		categories = append(categories, *c)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return categories, nil
}
