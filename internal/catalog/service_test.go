package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/candyland-dev/candyland-backend/pkg/errors"
)

func TestCreateCategoryDerivesSlug(t *testing.T) {
	svc, _ := newTestService(t)

	category, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: "Tortas Heladas"})
	require.NoError(t, err)
	assert.Equal(t, "tortas-heladas", category.Slug)
	assert.True(t, category.IsActive)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Bombones"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, CreateCategoryInput{Name: "Bombones"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestUpdateCategoryReslugs(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Alfajores")

	newName := "Alfajores de Maicena"
	updated, err := svc.UpdateCategory(ctx, category.ID, UpdateCategoryInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "alfajores-de-maicena", updated.Slug)
}

func TestDeactivateCategoryHidesFromListings(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Temporada")

	require.NoError(t, svc.DeactivateCategory(ctx, category.ID))

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	for _, c := range categories {
		assert.NotEqual(t, category.ID, c.ID)
	}

	_, err = svc.GetCategory(ctx, category.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCreateProductRequiresActiveCategory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:       "Trufas",
		Price:      decimal.RequireFromString("3.00"),
		CategoryID: uuid.New(),
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCreateProductWithImages(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Chocolates")

	product, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:        "Tableta de Cacao 70%",
		Price:       decimal.RequireFromString("5.50"),
		Stock:       12,
		IsAvailable: true,
		CategoryID:  category.ID,
		ImageURLs:   []string{"http://localhost/uploads/a.jpg", "http://localhost/uploads/b.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, "tableta-de-cacao-70", product.Slug)

	loaded, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Images, 2)
	require.NotNil(t, loaded.Category)
	assert.Equal(t, category.ID, loaded.Category.ID)
}

func TestFindCatalogPaginatesNewestFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Galletas")

	for i := 0; i < 6; i++ {
		mustCreateProduct(t, svc, category.ID, fmt.Sprintf("Galleta %d", i), "1.00", 10)
	}

	page, err := svc.FindCatalog(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, page.Data, 4)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 4, page.Pagination.Limit)
	assert.Equal(t, int64(6), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNextPage)
	assert.False(t, page.Pagination.HasPrevPage)

	second, err := svc.FindCatalog(ctx, 2, 4)
	require.NoError(t, err)
	assert.Len(t, second.Data, 2)
	assert.False(t, second.Pagination.HasNextPage)
	assert.True(t, second.Pagination.HasPrevPage)
}

func TestFindCatalogClampsLimit(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Caramelos")
	mustCreateProduct(t, svc, category.ID, "Caramelo", "0.50", 100)

	page, err := svc.FindCatalog(ctx, 1, 500)
	require.NoError(t, err)
	assert.Equal(t, 20, page.Pagination.Limit)
}

func TestFindCatalogExcludesInactiveCategoryProducts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	active := mustCreateCategory(t, svc, "Visibles")
	hidden := mustCreateCategory(t, svc, "Ocultos")
	mustCreateProduct(t, svc, active.ID, "Visible", "1.00", 1)
	orphan := mustCreateProduct(t, svc, hidden.ID, "Oculto", "1.00", 1)

	require.NoError(t, svc.DeactivateCategory(ctx, hidden.ID))

	page, err := svc.FindCatalog(ctx, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.NotEqual(t, orphan.ID, page.Data[0].ID)
}

func TestUpdateProductReplacesImages(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Tartas")

	product, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:        "Tarta de Limón",
		Price:       decimal.RequireFromString("9.00"),
		Stock:       3,
		IsAvailable: true,
		CategoryID:  category.ID,
		ImageURLs:   []string{"http://localhost/uploads/old.jpg"},
	})
	require.NoError(t, err)

	newImages := []string{"http://localhost/uploads/new1.jpg", "http://localhost/uploads/new2.jpg"}
	newPrice := decimal.RequireFromString("10.50")
	updated, err := svc.UpdateProduct(ctx, product.ID, UpdateProductInput{
		Price:     &newPrice,
		ImageURLs: &newImages,
	})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))
	require.Len(t, updated.Images, 2)
	for _, img := range updated.Images {
		assert.Contains(t, newImages, img.URL)
	}
}

func TestUpdateProductRename(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Postres")
	product := mustCreateProduct(t, svc, category.ID, "Flan Casero", "4.00", 5)

	newName := "Flan de Dulce de Leche"
	updated, err := svc.UpdateProduct(ctx, product.ID, UpdateProductInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "flan-de-dulce-de-leche", updated.Slug)
}

func TestDeactivateProductKeepsStock(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	category := mustCreateCategory(t, svc, "Budines")
	product := mustCreateProduct(t, svc, category.ID, "Budín Inglés", "6.00", 7)

	require.NoError(t, svc.DeactivateProduct(ctx, product.ID))

	var stock int
	require.NoError(t, client.DB().Raw("SELECT stock FROM products WHERE id = ?", product.ID).Scan(&stock).Error)
	assert.Equal(t, 7, stock)

	_, err := svc.GetProduct(ctx, product.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestFindByCategory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first := mustCreateCategory(t, svc, "Masas")
	second := mustCreateCategory(t, svc, "Bebidas")
	mustCreateProduct(t, svc, first.ID, "Medialunas", "0.80", 50)
	mustCreateProduct(t, svc, second.ID, "Chocolatada", "2.00", 20)

	products, err := svc.FindByCategory(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Medialunas", products[0].Name)
}
