package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/example/joyashop/pkg/models"
	"github.com/example/joyashop/pkg/service"
)

type catalogFixture struct {
	svc        *service.CatalogService
	products   *mockProductStore
	categories *mockCategoryStore
	cache      *mockProductCache
}

func setupCatalog(t *testing.T) *catalogFixture {
	t.Helper()
	products := newMockProductStore()
	categories := newMockCategoryStore()
	cache := newMockProductCache()
	svc := service.NewCatalogService(products, categories, cache, zap.NewNop())
	return &catalogFixture{svc: svc, products: products, categories: categories, cache: cache}
}

func seedCategory(t *testing.T, categories *mockCategoryStore, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name}
	require.NoError(t, categories.Insert(context.Background(), c))
	return c
}

func TestCreateProduct(t *testing.T) {
	f := setupCatalog(t)
	ctx := context.Background()
	rings := seedCategory(t, f.categories, "Anillos")

	t.Run("denormalizes the category name and bumps the counter", func(t *testing.T) {
		created, err := f.svc.CreateProduct(ctx, &models.Product{
			Name:       "Anillo de oro",
			Price:      120,
			Stock:      5,
			CategoryID: rings.ID,
		})
		require.NoError(t, err)

		assert.Equal(t, "Anillos", created.CategoryName)

		category, err := f.categories.FindByID(ctx, rings.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), category.ProductCount)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := f.svc.CreateProduct(ctx, &models.Product{
			Name:       "Collar",
			Price:      80,
			CategoryID: primitive.NewObjectID(),
		})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := f.svc.CreateProduct(ctx, &models.Product{
			Name:       "Collar",
			Price:      -1,
			CategoryID: rings.ID,
		})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestDeleteProduct(t *testing.T) {
	f := setupCatalog(t)
	ctx := context.Background()
	rings := seedCategory(t, f.categories, "Anillos")

	created, err := f.svc.CreateProduct(ctx, &models.Product{
		Name: "Anillo", Price: 100, CategoryID: rings.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteProduct(ctx, created.ID))

	category, err := f.categories.FindByID(ctx, rings.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), category.ProductCount)

	t.Run("counter never goes below zero", func(t *testing.T) {
		// A second product whose counter was already consumed elsewhere.
		orphan := &models.Product{Name: "Huérfano", Price: 10, CategoryID: rings.ID, CategoryName: "Anillos"}
		require.NoError(t, f.products.Insert(ctx, orphan))

		require.NoError(t, f.svc.DeleteProduct(ctx, orphan.ID))

		category, err := f.categories.FindByID(ctx, rings.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), category.ProductCount)
	})

	t.Run("missing product", func(t *testing.T) {
		err := f.svc.DeleteProduct(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestDeleteCategory(t *testing.T) {
	f := setupCatalog(t)
	ctx := context.Background()
	rings := seedCategory(t, f.categories, "Anillos")

	_, err := f.svc.CreateProduct(ctx, &models.Product{
		Name: "Anillo", Price: 100, CategoryID: rings.ID,
	})
	require.NoError(t, err)

	t.Run("refused while products remain", func(t *testing.T) {
		err := f.svc.DeleteCategory(ctx, rings.ID)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("allowed once empty", func(t *testing.T) {
		empty := seedCategory(t, f.categories, "Collares")
		require.NoError(t, f.svc.DeleteCategory(ctx, empty.ID))
	})

	t.Run("missing category", func(t *testing.T) {
		err := f.svc.DeleteCategory(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestUpdateProductMovesCategory(t *testing.T) {
	f := setupCatalog(t)
	ctx := context.Background()
	rings := seedCategory(t, f.categories, "Anillos")
	chains := seedCategory(t, f.categories, "Cadenas")

	created, err := f.svc.CreateProduct(ctx, &models.Product{
		Name: "Pieza", Price: 100, CategoryID: rings.ID,
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateProduct(ctx, created.ID, models.ProductPatch{CategoryID: &chains.ID})
	require.NoError(t, err)

	assert.Equal(t, chains.ID, updated.CategoryID)
	assert.Equal(t, "Cadenas", updated.CategoryName)

	oldCat, _ := f.categories.FindByID(ctx, rings.ID)
	newCat, _ := f.categories.FindByID(ctx, chains.ID)
	assert.Equal(t, int64(0), oldCat.ProductCount)
	assert.Equal(t, int64(1), newCat.ProductCount)

	t.Run("unknown target category", func(t *testing.T) {
		bogus := primitive.NewObjectID()
		_, err := f.svc.UpdateProduct(ctx, created.ID, models.ProductPatch{CategoryID: &bogus})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestProductCache(t *testing.T) {
	f := setupCatalog(t)
	ctx := context.Background()
	rings := seedCategory(t, f.categories, "Anillos")

	created, err := f.svc.CreateProduct(ctx, &models.Product{
		Name: "Anillo", Price: 100, CategoryID: rings.ID,
	})
	require.NoError(t, err)

	t.Run("read populates the cache", func(t *testing.T) {
		_, err := f.svc.GetProduct(ctx, created.ID)
		require.NoError(t, err)
		_, ok := f.cache.entries[created.ID.Hex()]
		assert.True(t, ok)
	})

	t.Run("update invalidates the cache", func(t *testing.T) {
		newPrice := 130.0
		_, err := f.svc.UpdateProduct(ctx, created.ID, models.ProductPatch{Price: &newPrice})
		require.NoError(t, err)

		_, ok := f.cache.entries[created.ID.Hex()]
		assert.False(t, ok)
		assert.Contains(t, f.cache.invalidated, created.ID.Hex())
	})
}
