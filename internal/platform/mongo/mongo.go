// Package mongo implements the store interfaces on MongoDB.
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tranqv/storefront-api/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection      = "users"
	productsCollection   = "products"
	categoriesCollection = "categories"

	defaultDBName = "storefront"
)

// caseInsensitive is the collation used wherever names are compared or
// kept unique ignoring case.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

// Mongo is a thin adapter owning the client and collection handles.
type Mongo struct {
	client     *mongodriver.Client
	db         *mongodriver.Database
	users      *mongodriver.Collection
	products   *mongodriver.Collection
	categories *mongodriver.Collection
}

// New connects to MongoDB, pings it and ensures the indexes the stores
// rely on (unique email, refresh-token lookup, case-insensitive unique
// product name).
func New(ctx context.Context, cfg config.MongoConfig) (*Mongo, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("mongo: empty URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(databaseFromURI(cfg.URL))

	m := &Mongo{
		client:     cli,
		db:         db,
		users:      db.Collection(usersCollection),
		products:   db.Collection(productsCollection),
		categories: db.Collection(categoriesCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	userIndexes := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "refresh_token", Value: 1}},
			Options: options.Index().SetName("refresh_token_lookup"),
		},
	}
	if _, err := m.users.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("mongo ensure user indexes: %w", err)
	}

	productIndexes := []mongodriver.IndexModel{
		{
			Keys: bson.D{{Key: "name", Value: 1}},
			Options: options.Index().
				SetName("name_unique_ci").
				SetUnique(true).
				SetCollation(caseInsensitive),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_desc"),
		},
	}
	if _, err := m.products.Indexes().CreateMany(ctx, productIndexes); err != nil {
		return fmt.Errorf("mongo ensure product indexes: %w", err)
	}

	categoryIndexes := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("name_unique").SetUnique(true),
		},
	}
	if _, err := m.categories.Indexes().CreateMany(ctx, categoryIndexes); err != nil {
		return fmt.Errorf("mongo ensure category indexes: %w", err)
	}

	return nil
}

// isDuplicateKey reports whether err is a unique-index violation.
func isDuplicateKey(err error) bool {
	return mongodriver.IsDuplicateKeyError(err)
}

// databaseFromURI extracts the database name from a mongodb URI path,
// falling back to a sensible default.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}
