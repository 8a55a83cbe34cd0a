package catalog_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizzaria-erp/go-api-server/internal/catalog"
	"github.com/pizzaria-erp/go-api-server/internal/model"
	"github.com/pizzaria-erp/go-api-server/internal/shared/repository"
	"github.com/pizzaria-erp/go-api-server/internal/shared/testutil"
)

type fixture struct {
	repos    catalog.Repositories
	unit     *model.Unit
	brand    *model.Brand
	category *model.Category
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()

	ctx := context.Background()
	deps := repository.Deps{DB: testutil.SetupTestDB(t), Logger: slog.Default()}
	brands := catalog.NewBrandRepository(ctx, deps)
	units := catalog.NewUnitRepository(ctx, deps)
	categories := catalog.NewCategoryRepository(ctx, deps)
	repos := catalog.Repositories{
		Brands:     brands,
		Units:      units,
		Categories: categories,
		Products:   catalog.NewProductRepository(ctx, deps, brands, units, categories),
	}

	unit, err := units.Save(ctx, &model.Unit{Symbol: "KG", Description: "Quilograma"})
	require.NoError(t, err)
	brand, err := brands.Save(ctx, &model.Brand{Name: "Tirolez"})
	require.NoError(t, err)
	category, err := categories.Save(ctx, &model.Category{Name: "Laticínios"})
	require.NoError(t, err)

	return &fixture{repos: repos, unit: unit, brand: brand, category: category}
}

func (f *fixture) product(name string, stock, minimum int64) *model.Product {
	return &model.Product{
		Name:         name,
		SalePrice:    decimal.RequireFromString("42.90"),
		Stock:        decimal.NewFromInt(stock),
		MinimumStock: decimal.NewFromInt(minimum),
		UnitID:       f.unit.ID,
	}
}

func TestProduct_FindByIDJoinsReferences(t *testing.T) {
	// Given
	f := setupFixture(t)
	ctx := context.Background()
	p := f.product("Mussarela", 10, 5)
	p.Barcode = "7891234567895"
	p.BrandID = &f.brand.ID
	p.CategoryID = &f.category.ID
	saved, err := f.repos.Products.Save(ctx, p)
	require.NoError(t, err)

	// When
	found, ok, err := f.repos.Products.FindByID(ctx, saved.ID)

	// Then
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "42.90", found.SalePrice.StringFixed(2))
	require.NotNil(t, found.Unit)
	assert.Equal(t, "KG", found.Unit.Symbol)
	require.NotNil(t, found.Brand)
	assert.Equal(t, "Tirolez", found.Brand.Name)
	require.NotNil(t, found.Category)
	assert.Equal(t, "Laticínios", found.Category.Name)

	byBarcode, ok, err := f.repos.Products.FindByBarcode(ctx, "7891234567895")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, saved.ID, byBarcode.ID)
}

func TestProduct_OptionalReferencesStayNil(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	saved, err := f.repos.Products.Save(ctx, f.product("Orégano", 1, 0))
	require.NoError(t, err)

	found, ok, err := f.repos.Products.FindByID(ctx, saved.ID)

	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, found.Brand)
	assert.Nil(t, found.Category)
	assert.Nil(t, found.BrandID)
	require.NotNil(t, found.Unit)
}

func TestProduct_FindBelowMinimumStock(t *testing.T) {
	// Given
	f := setupFixture(t)
	ctx := context.Background()
	for _, p := range []*model.Product{
		f.product("Calabresa", 2, 5),
		f.product("Farinha", 50, 20),
		f.product("Azeitona", 4, 4),
		f.product("Manjericão", 0, 1),
	} {
		_, err := f.repos.Products.Save(ctx, p)
		require.NoError(t, err)
	}

	// When
	low, err := f.repos.Products.FindBelowMinimumStock(ctx)

	// Then: natural order, equal stock is not below
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Calabresa", low[0].Name)
	assert.Equal(t, "Manjericão", low[1].Name)
}

func TestProduct_FindByCategory(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	cheese := f.product("Provolone", 3, 1)
	cheese.CategoryID = &f.category.ID
	_, err := f.repos.Products.Save(ctx, cheese)
	require.NoError(t, err)
	_, err = f.repos.Products.Save(ctx, f.product("Fermento", 3, 1))
	require.NoError(t, err)

	got, err := f.repos.Products.FindByCategory(ctx, f.category.ID)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Provolone", got[0].Name)
}

func TestUnit_FindBySymbolIgnoresCase(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	found, ok, err := f.repos.Units.FindBySymbol(ctx, "kg")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, f.unit.ID, found.ID)

	_, ok, err = f.repos.Units.FindBySymbol(ctx, "UN")
	require.NoError(t, err)
	assert.False(t, ok)

	matches, err := f.repos.Units.FindByName(ctx, "grama")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
