package products

import (
	"context"
	"testing"

	"espoir-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupProductTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{}, &models.CategoryTranslation{},
		&models.Product{}, &models.ProductTranslation{},
	))
	return &Service{DB: db}, db
}

func frName(name string) []TranslationInput {
	return []TranslationInput{{Language: models.LanguageFR, Name: name}}
}

func TestCreateProduct_WithCategoriesAndImages(t *testing.T) {
	svc, db := setupProductTest(t)
	cat := &models.Category{Slug: "artisanat"}
	require.NoError(t, db.Create(cat).Error)

	product, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Slug:         "sac-tisse",
		Price:        15_000,
		Stock:        12,
		IsActive:     true,
		Images:       datatypes.JSON(`["https://cdn.espoir.org/sac-1.jpg","https://cdn.espoir.org/sac-2.jpg"]`),
		CategoryIDs:  []uuid.UUID{cat.ID},
		Translations: frName("Sac tissé main"),
	})
	require.NoError(t, err)
	require.Len(t, product.Categories, 1)
	assert.Equal(t, int64(15_000), product.Price)
	assert.Nil(t, product.ComparePrice)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc, _ := setupProductTest(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, CreateProductInput{Slug: "x", Price: 0, Translations: frName("X")})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = svc.CreateProduct(ctx, CreateProductInput{Slug: "x", Price: 100, Stock: -1, Translations: frName("X")})
	assert.ErrorIs(t, err, ErrInvalidStock)

	_, err = svc.CreateProduct(ctx, CreateProductInput{Slug: "x", Price: 100})
	assert.ErrorIs(t, err, ErrNoTranslations)

	missing := uuid.New()
	_, err = svc.CreateProduct(ctx, CreateProductInput{
		Slug: "x", Price: 100, CategoryIDs: []uuid.UUID{missing}, Translations: frName("X"),
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestUpdateProduct_ReplaceTranslations(t *testing.T) {
	svc, db := setupProductTest(t)

	created, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Slug: "sac-tisse", Price: 15_000, IsActive: true,
		Translations: []TranslationInput{
			{Language: models.LanguageFR, Name: "Sac tissé"},
			{Language: models.LanguageEN, Name: "Woven bag"},
		},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(context.Background(), created.ID, UpdateProductInput{
		Translations: frName("Sac tissé main"),
	})
	require.NoError(t, err)
	require.Len(t, updated.Translations, 1)
	assert.Equal(t, "Sac tissé main", updated.Translations[0].Name)

	var rows int64
	require.NoError(t, db.Model(&models.ProductTranslation{}).Where("product_id = ?", created.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestListProducts_CategoryFilter(t *testing.T) {
	svc, db := setupProductTest(t)
	ctx := context.Background()
	cat := &models.Category{Slug: "artisanat"}
	require.NoError(t, db.Create(cat).Error)

	_, err := svc.CreateProduct(ctx, CreateProductInput{
		Slug: "sac", Price: 15_000, IsActive: true,
		CategoryIDs: []uuid.UUID{cat.ID}, Translations: frName("Sac"),
	})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, CreateProductInput{
		Slug: "affiche", Price: 5_000, IsActive: true, Translations: frName("Affiche"),
	})
	require.NoError(t, err)

	out, total, err := svc.ListProducts(ctx, Filter{CategoryID: &cat.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, out, 1)
	assert.Equal(t, "sac", out[0].Slug)

	inactive := false
	_, total, err = svc.ListProducts(ctx, Filter{IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
