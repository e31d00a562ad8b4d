package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranqv/storefront-api/internal/domain"
	"github.com/tranqv/storefront-api/internal/service/catalog"
	"github.com/tranqv/storefront-api/internal/store"
)

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	svc, products, _, _ := newTestCatalogService(t)

	product, err := svc.CreateProduct(ctx, catalog.CreateProductInput{
		Name:  "Hammer",
		Price: 12.5,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hammer", product.Name)
	assert.Equal(t, domain.DefaultUnit, product.Unit)
	assert.Equal(t, "Hammer", product.Description)
	assert.Len(t, products.Products, 1)
}

func TestCreateProduct_WithImage(t *testing.T) {
	ctx := context.Background()
	svc, _, _, media := newTestCatalogService(t)

	product, err := svc.CreateProduct(ctx, catalog.CreateProductInput{
		Name:  "Hammer",
		Price: 12.5,
		Image: &catalog.ImageUpload{Data: []byte("png bytes"), ContentType: "image/png"},
	})
	require.NoError(t, err)

	require.NotNil(t, product.Image)
	assert.NotEmpty(t, product.Image.URL)
	assert.NotEmpty(t, product.Image.AssetID)
	assert.Equal(t, 1, media.Uploads)
}

func TestCreateProduct_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestCatalogService(t)

	tests := []struct {
		name    string
		input   catalog.CreateProductInput
		wantErr error
	}{
		{"zero price", catalog.CreateProductInput{Name: "Hammer"}, domain.ErrInvalidPrice},
		{"negative price", catalog.CreateProductInput{Name: "Hammer", Price: -3}, domain.ErrInvalidPrice},
		{"bad unit", catalog.CreateProductInput{Name: "Hammer", Price: 5, Unit: "bundle"}, domain.ErrInvalidUnit},
		{"empty name", catalog.CreateProductInput{Price: 5}, domain.ErrEmptyName},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestCatalogService(t)

	missing := uuid.New()
	_, err := svc.CreateProduct(ctx, catalog.CreateProductInput{
		Name:       "Hammer",
		Price:      5,
		CategoryID: &missing,
	})
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestCreateProduct_DuplicateName(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestCatalogService(t)

	_, err := svc.CreateProduct(ctx, catalog.CreateProductInput{Name: "Hammer", Price: 5})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, catalog.CreateProductInput{Name: "hammer", Price: 6})
	assert.ErrorIs(t, err, store.ErrProductNameExists)
}

func TestUpdateProduct_Partial(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestCatalogService(t)

	created, err := svc.CreateProduct(ctx, catalog.CreateProductInput{
		Name:        "Hammer",
		Description: "Claw hammer",
		Price:       12.5,
	})
	require.NoError(t, err)

	newPrice := 15.0
	updated, err := svc.UpdateProduct(ctx, created.ID, catalog.UpdateProductInput{
		Price: &newPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, 15.0, updated.Price)
	assert.Equal(t, "Hammer", updated.Name)
	assert.Equal(t, "Claw hammer", updated.Description)
}

func TestUpdateProduct_ReplacesImage(t *testing.T) {
	ctx := context.Background()
	svc, _, _, media := newTestCatalogService(t)

	created, err := svc.CreateProduct(ctx, catalog.CreateProductInput{
		Name:  "Hammer",
		Price: 12.5,
		Image: &catalog.ImageUpload{Data: []byte("old"), ContentType: "image/png"},
	})
	require.NoError(t, err)
	oldAssetID := created.Image.AssetID

	updated, err := svc.UpdateProduct(ctx, created.ID, catalog.UpdateProductInput{
		Image: &catalog.ImageUpload{Data: []byte("new"), ContentType: "image/jpeg"},
	})
	require.NoError(t, err)

	assert.NotEqual(t, oldAssetID, updated.Image.AssetID)
	assert.Contains(t, media.Destroyed, oldAssetID)
}

func TestUpdateProduct_ClearCategory(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestCatalogService(t)

	category, err := svc.CreateCategory(ctx, "Tools", "")
	require.NoError(t, err)

	created, err := svc.CreateProduct(ctx, catalog.CreateProductInput{
		Name:       "Hammer",
		Price:      12.5,
		CategoryID: &category.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, created.CategoryID)

	cleared := uuid.Nil
	updated, err := svc.UpdateProduct(ctx, created.ID, catalog.UpdateProductInput{
		CategoryID: &cleared,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.CategoryID)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestCatalogService(t)

	_, err := svc.UpdateProduct(ctx, uuid.New(), catalog.UpdateProductInput{})
	assert.ErrorIs(t, err, store.ErrProductNotFound)
}

func TestDeleteProduct_DestroysImage(t *testing.T) {
	ctx := context.Background()
	svc, products, _, media := newTestCatalogService(t)

	created, err := svc.CreateProduct(ctx, catalog.CreateProductInput{
		Name:  "Hammer",
		Price: 12.5,
		Image: &catalog.ImageUpload{Data: []byte("png"), ContentType: "image/png"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))
	assert.Empty(t, products.Products)
	assert.Contains(t, media.Destroyed, created.Image.AssetID)
}

func TestGetProductDetail(t *testing.T) {
	ctx := context.Background()
	svc, _, categories, _ := newTestCatalogService(t)

	category, err := svc.CreateCategory(ctx, "Tools", "Hand tools")
	require.NoError(t, err)

	created, err := svc.CreateProduct(ctx, catalog.CreateProductInput{
		Name:       "Hammer",
		Price:      12.5,
		CategoryID: &category.ID,
	})
	require.NoError(t, err)

	product, gotCategory, err := svc.GetProductDetail(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, product.ID)
	require.NotNil(t, gotCategory)
	assert.Equal(t, "Tools", gotCategory.Name)

	// A dangling category reference is served without a category, not as
	// an error.
	delete(categories.Categories, category.ID)
	product, gotCategory, err = svc.GetProductDetail(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, product.ID)
	assert.Nil(t, gotCategory)
}

func TestListProducts_Pagination(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestCatalogService(t)

	names := []string{"Hammer", "Wrench", "Pliers"}
	for _, name := range names {
		_, err := svc.CreateProduct(ctx, catalog.CreateProductInput{Name: name, Price: 5})
		require.NoError(t, err)
	}

	page, err := svc.ListProducts(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 2)

	// Out-of-range inputs fall back to defaults.
	page, err = svc.ListProducts(ctx, 0, -5)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
}

func TestSearchProducts(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestCatalogService(t)

	_, err := svc.CreateProduct(ctx, catalog.CreateProductInput{
		Name: "Claw Hammer", Price: 5,
	})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, catalog.CreateProductInput{
		Name: "Wrench", Description: "Adjustable hammer-tight grip", Price: 5,
	})
	require.NoError(t, err)

	results, err := svc.SearchProducts(ctx, "hammer")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = svc.SearchProducts(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCategoryLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestCatalogService(t)

	category, err := svc.CreateCategory(ctx, "Tools", "Hand tools")
	require.NoError(t, err)

	newName := "Power Tools"
	updated, err := svc.UpdateCategory(ctx, category.ID, catalog.UpdateCategoryInput{
		Name: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "Power Tools", updated.Name)
	assert.Equal(t, "Hand tools", updated.Description)

	list, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteCategory(ctx, category.ID))

	err = svc.DeleteCategory(ctx, category.ID)
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestCreateCategory_EmptyName(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestCatalogService(t)

	_, err := svc.CreateCategory(ctx, "   ", "")
	assert.ErrorIs(t, err, domain.ErrEmptyName)
}
