package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tranqv/storefront-api/internal/api"
	"github.com/tranqv/storefront-api/internal/api/middleware"
	"github.com/tranqv/storefront-api/internal/domain"
	"github.com/tranqv/storefront-api/internal/mocks"
	"github.com/tranqv/storefront-api/internal/service/auth"
	"github.com/tranqv/storefront-api/internal/service/catalog"
	"github.com/tranqv/storefront-api/internal/service/user"
)

// testEnv wires the full route table against in-memory fakes.
type testEnv struct {
	router     http.Handler
	users      *mocks.MockUserStore
	products   *mocks.MockProductStore
	categories *mocks.MockCategoryStore
	media      *mocks.MockMediaStore
	tokens     *mocks.MockTokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:      mocks.NewMockUserStore(),
		products:   mocks.NewMockProductStore(),
		categories: mocks.NewMockCategoryStore(),
		media:      mocks.NewMockMediaStore(),
		tokens:     mocks.NewMockTokenService(),
	}

	authService := auth.NewService(env.users, env.tokens, auth.NewBcryptHasher())
	catalogService := catalog.NewService(env.products, env.categories, env.media)
	userService := user.NewService(env.users)

	authHandler := api.NewAuthHandler(authService)
	userHandler := api.NewUserHandler(userService)
	productHandler := api.NewProductHandler(catalogService)
	categoryHandler := api.NewCategoryHandler(catalogService)
	authMiddleware := middleware.NewAuthMiddleware(env.tokens)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh-token", authHandler.RefreshToken)

		r.Get("/products", productHandler.List)
		r.Get("/products/search", productHandler.Search)
		r.Get("/products/{id}", productHandler.Get)
		r.Get("/categories", categoryHandler.List)
		r.Get("/categories/{id}", categoryHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/profile", authHandler.Profile)

			r.With(authMiddleware.RequireAdmin).Get("/users", userHandler.List)
			r.Get("/users/{id}", userHandler.Get)
			r.Put("/users/{id}", userHandler.Update)
			r.Delete("/users/{id}", userHandler.Delete)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAdmin)

				r.Post("/products", productHandler.Create)
				r.Post("/products/bulk", productHandler.BulkImport)
				r.Put("/products/{id}", productHandler.Update)
				r.Delete("/products/{id}", productHandler.Delete)

				r.Post("/categories", categoryHandler.Create)
				r.Put("/categories/{id}", categoryHandler.Update)
				r.Delete("/categories/{id}", categoryHandler.Delete)
			})
		})
	})
	env.router = r

	return env
}

// seedUser inserts a user directly into the fake store and returns it
// alongside a bearer token for that user.
func (env *testEnv) seedUser(t *testing.T, name, email string, role domain.Role) (*domain.User, string) {
	t.Helper()

	u := &domain.User{
		ID:             uuid.New(),
		Name:           name,
		Email:          email,
		HashedPassword: "$2a$10$fakefakefakefakefakefake",
		Role:           role,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, env.users.Create(context.Background(), u))

	token, err := env.tokens.GenerateAccessToken(context.Background(), u.ID, u.Role)
	require.NoError(t, err)
	return u, token
}

func (env *testEnv) doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// multipartBody builds a multipart form with the given fields and an
// optional image file part.
func multipartBody(t *testing.T, fields map[string]string, image []byte, imageType string) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}

	if image != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="image.png"`)
		h.Set("Content-Type", imageType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}
