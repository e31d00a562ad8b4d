package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/tranqv/storefront-api/internal/domain"
	"github.com/tranqv/storefront-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type imageDoc struct {
	URL     string `bson:"url"`
	AssetID string `bson:"asset_id"`
}

type productDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Price       float64   `bson:"price"`
	ImportPrice float64   `bson:"import_price"`
	Unit        string    `bson:"unit"`
	CategoryID  *string   `bson:"category_id"`
	Image       *imageDoc `bson:"image"`
	CreatedAt   time.Time `bson:"created_at"`
}

func toProductDoc(p *domain.Product) productDoc {
	doc := productDoc{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImportPrice: p.ImportPrice,
		Unit:        p.Unit,
		CreatedAt:   p.CreatedAt.UTC(),
	}
	if p.CategoryID != nil {
		s := p.CategoryID.String()
		doc.CategoryID = &s
	}
	if p.Image != nil {
		doc.Image = &imageDoc{URL: p.Image.URL, AssetID: p.Image.AssetID}
	}
	return doc
}

func (d productDoc) toDomain() (*domain.Product, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("product document %q: bad id: %w", d.ID, err)
	}

	p := &domain.Product{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		ImportPrice: d.ImportPrice,
		Unit:        d.Unit,
		CreatedAt:   d.CreatedAt.UTC(),
	}
	if d.CategoryID != nil {
		cid, err := uuid.Parse(*d.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("product document %q: bad category id: %w", d.ID, err)
		}
		p.CategoryID = &cid
	}
	if d.Image != nil {
		p.Image = &domain.Image{URL: d.Image.URL, AssetID: d.Image.AssetID}
	}
	return p, nil
}

// productStore gives the product methods their own receiver so the user
// and product interfaces don't collide on one type.
type productStore struct{ m *Mongo }

// Products returns the ProductStore backed by this connection.
func (m *Mongo) Products() store.ProductStore {
	return &productStore{m: m}
}

var _ store.ProductStore = (*productStore)(nil)

// Create saves a new product. The case-insensitive unique name index
// turns duplicates into store.ErrProductNameExists.
func (s *productStore) Create(ctx context.Context, product *domain.Product) error {
	const op = "mongo.products.Create"

	if _, err := s.m.products.InsertOne(ctx, toProductDoc(product)); err != nil {
		if isDuplicateKey(err) {
			return store.ErrProductNameExists
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetByID retrieves a product by ID.
func (s *productStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.findProduct(ctx, bson.D{{Key: "_id", Value: id.String()}}, nil)
}

// GetByName retrieves a product by name using the case-insensitive
// collation, so "Widget" and "widget" resolve to the same entry.
func (s *productStore) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	opts := options.FindOne().SetCollation(caseInsensitive)
	return s.findProduct(ctx, bson.D{{Key: "name", Value: name}}, opts)
}

func (s *productStore) findProduct(
	ctx context.Context,
	filter bson.D,
	opts *options.FindOneOptions,
) (*domain.Product, error) {
	const op = "mongo.products.find"

	var doc productDoc
	var err error
	if opts != nil {
		err = s.m.products.FindOne(ctx, filter, opts).Decode(&doc)
	} else {
		err = s.m.products.FindOne(ctx, filter).Decode(&doc)
	}
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, store.ErrProductNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return doc.toDomain()
}

// Update replaces an existing product document.
func (s *productStore) Update(ctx context.Context, product *domain.Product) error {
	const op = "mongo.products.Update"

	res, err := s.m.products.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: product.ID.String()}},
		toProductDoc(product))
	if err != nil {
		if isDuplicateKey(err) {
			return store.ErrProductNameExists
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return store.ErrProductNotFound
	}

	return nil
}

// Delete removes a product permanently.
func (s *productStore) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "mongo.products.Delete"

	res, err := s.m.products.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return store.ErrProductNotFound
	}

	return nil
}

// List returns one page of products, newest first, together with the
// total count and page arithmetic the admin UI paginates with.
func (s *productStore) List(ctx context.Context, page, limit int) (*store.ProductPage, error) {
	const op = "mongo.products.List"

	total, err := s.m.products.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%s: count: %w", op, err)
	}

	skip := int64(page-1) * int64(limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(limit))

	items, err := s.decodeAll(ctx, bson.D{}, opts, op)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &store.ProductPage{
		Items:      items,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// Search matches q against name or description, case-insensitively.
func (s *productStore) Search(ctx context.Context, q string, limit int) ([]domain.Product, error) {
	const op = "mongo.products.Search"

	pattern := regexp.QuoteMeta(q)
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "name", Value: bson.D{
			{Key: "$regex", Value: pattern}, {Key: "$options", Value: "i"},
		}}},
		bson.D{{Key: "description", Value: bson.D{
			{Key: "$regex", Value: pattern}, {Key: "$options", Value: "i"},
		}}},
	}}}

	opts := options.Find().SetLimit(int64(limit))
	return s.decodeAll(ctx, filter, opts, op)
}

func (s *productStore) decodeAll(
	ctx context.Context,
	filter bson.D,
	opts *options.FindOptions,
	op string,
) ([]domain.Product, error) {
	cur, err := s.m.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var items []domain.Product
	for cur.Next(ctx) {
		var doc productDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		p, err := doc.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, *p)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return items, nil
}
