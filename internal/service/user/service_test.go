package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranqv/storefront-api/internal/domain"
	"github.com/tranqv/storefront-api/internal/mocks"
	"github.com/tranqv/storefront-api/internal/service/user"
	"github.com/tranqv/storefront-api/internal/store"
)

func seedUser(t *testing.T, users *mocks.MockUserStore, name, email string, role domain.Role) *domain.User {
	t.Helper()

	u := &domain.User{
		ID:             uuid.New(),
		Name:           name,
		Email:          email,
		HashedPassword: "$2a$10$fakefakefakefakefakefake",
		Role:           role,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestList(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewMockUserStore()
	svc := user.NewService(users)

	admin := seedUser(t, users, "Admin", "admin@example.com", domain.RoleAdmin)
	regular := seedUser(t, users, "Bob", "bob@example.com", domain.RoleUser)

	list, err := svc.List(ctx, user.Actor{ID: admin.ID, Role: admin.Role})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.List(ctx, user.Actor{ID: regular.ID, Role: regular.Role})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGet_AdminOrSelf(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewMockUserStore()
	svc := user.NewService(users)

	admin := seedUser(t, users, "Admin", "admin@example.com", domain.RoleAdmin)
	alice := seedUser(t, users, "Alice", "alice@example.com", domain.RoleUser)
	bob := seedUser(t, users, "Bob", "bob@example.com", domain.RoleUser)

	// Admin may read anyone.
	got, err := svc.Get(ctx, user.Actor{ID: admin.ID, Role: admin.Role}, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.Email, got.Email)

	// A user may read themselves.
	got, err = svc.Get(ctx, user.Actor{ID: alice.ID, Role: alice.Role}, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.Email, got.Email)

	// But not anyone else.
	_, err = svc.Get(ctx, user.Actor{ID: bob.ID, Role: bob.Role}, alice.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewMockUserStore()
	svc := user.NewService(users)

	admin := seedUser(t, users, "Admin", "admin@example.com", domain.RoleAdmin)
	alice := seedUser(t, users, "Alice", "alice@example.com", domain.RoleUser)

	newName := "Alice B."
	updated, err := svc.Update(ctx, user.Actor{ID: alice.ID, Role: alice.Role}, alice.ID, user.UpdateInput{
		Name: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", updated.Name)
	assert.Equal(t, alice.Email, updated.Email)

	// Only an admin may change the role.
	adminRole := domain.RoleAdmin
	_, err = svc.Update(ctx, user.Actor{ID: alice.ID, Role: alice.Role}, alice.ID, user.UpdateInput{
		Role: &adminRole,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	updated, err = svc.Update(ctx, user.Actor{ID: admin.ID, Role: admin.Role}, alice.ID, user.UpdateInput{
		Role: &adminRole,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
}

func TestUpdate_Validation(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewMockUserStore()
	svc := user.NewService(users)

	alice := seedUser(t, users, "Alice", "alice@example.com", domain.RoleUser)
	actor := user.Actor{ID: alice.ID, Role: alice.Role}

	badEmail := "not-an-email"
	_, err := svc.Update(ctx, actor, alice.ID, user.UpdateInput{Email: &badEmail})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	badRole := domain.Role("superuser")
	adminActor := user.Actor{ID: uuid.New(), Role: domain.RoleAdmin}
	_, err = svc.Update(ctx, adminActor, alice.ID, user.UpdateInput{Role: &badRole})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewMockUserStore()
	svc := user.NewService(users)

	alice := seedUser(t, users, "Alice", "alice@example.com", domain.RoleUser)
	bob := seedUser(t, users, "Bob", "bob@example.com", domain.RoleUser)

	err := svc.Delete(ctx, user.Actor{ID: bob.ID, Role: bob.Role}, alice.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, svc.Delete(ctx, user.Actor{ID: alice.ID, Role: alice.Role}, alice.ID))

	_, err = svc.Get(ctx, user.Actor{ID: uuid.New(), Role: domain.RoleAdmin}, alice.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
