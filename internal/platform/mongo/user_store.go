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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// userDoc is the persisted shape of a user. IDs are stored as their
// canonical string form so documents stay readable in the shell.
type userDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	Password     string    `bson:"password"`
	Role         string    `bson:"role"`
	RefreshToken string    `bson:"refresh_token"`
	CreatedAt    time.Time `bson:"created_at"`
}

func toUserDoc(u *domain.User) userDoc {
	return userDoc{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		Password:     u.HashedPassword,
		Role:         string(u.Role),
		RefreshToken: u.RefreshToken,
		CreatedAt:    u.CreatedAt.UTC(),
	}
}

func (d userDoc) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("user document %q: bad id: %w", d.ID, err)
	}

	return &domain.User{
		ID:             id,
		Name:           d.Name,
		Email:          d.Email,
		HashedPassword: d.Password,
		Role:           domain.Role(d.Role),
		RefreshToken:   d.RefreshToken,
		CreatedAt:      d.CreatedAt.UTC(),
	}, nil
}

var _ store.UserStore = (*Mongo)(nil)

// Create saves a new user. The unique email index turns a duplicate
// insert into store.ErrEmailExists.
func (m *Mongo) Create(ctx context.Context, user *domain.User) error {
	const op = "mongo.users.Create"

	if _, err := m.users.InsertOne(ctx, toUserDoc(user)); err != nil {
		if isDuplicateKey(err) {
			return store.ErrEmailExists
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetByID retrieves a user by ID.
func (m *Mongo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.findUser(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

// GetByEmail retrieves a user by email.
func (m *Mongo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.findUser(ctx, bson.D{{Key: "email", Value: email}})
}

// GetByRefreshToken retrieves the user currently storing exactly this
// refresh token.
func (m *Mongo) GetByRefreshToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, store.ErrUserNotFound
	}
	return m.findUser(ctx, bson.D{{Key: "refresh_token", Value: token}})
}

func (m *Mongo) findUser(ctx context.Context, filter bson.D) (*domain.User, error) {
	const op = "mongo.users.find"

	var doc userDoc
	if err := m.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return doc.toDomain()
}

// UpdateRefreshToken overwrites the stored refresh token in a single
// document update; the store's per-document atomicity is the only
// synchronization for the rotation.
func (m *Mongo) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	const op = "mongo.users.UpdateRefreshToken"

	res, err := m.users.UpdateByID(ctx, id.String(), bson.D{
		{Key: "$set", Value: bson.D{{Key: "refresh_token", Value: token}}},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return store.ErrUserNotFound
	}

	return nil
}

// Update replaces an existing user document.
func (m *Mongo) Update(ctx context.Context, user *domain.User) error {
	const op = "mongo.users.Update"

	res, err := m.users.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: user.ID.String()}},
		toUserDoc(user))
	if err != nil {
		if isDuplicateKey(err) {
			return store.ErrEmailExists
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return store.ErrUserNotFound
	}

	return nil
}

// Delete removes a user permanently.
func (m *Mongo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "mongo.users.Delete"

	res, err := m.users.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return store.ErrUserNotFound
	}

	return nil
}

// List returns all users, newest first.
func (m *Mongo) List(ctx context.Context) ([]domain.User, error) {
	const op = "mongo.users.List"

	cur, err := m.users.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var users []domain.User
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		u, err := doc.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users = append(users, *u)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return users, nil
}
