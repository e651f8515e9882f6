package content

import (
	"context"
	"testing"
	"time"

	"espoir-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupContentTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Content{}, &models.ContentTranslation{}))
	return &Service{DB: db}, db
}

func frTitle(title string) []TranslationInput {
	return []TranslationInput{{Language: models.LanguageFR, Title: title, Body: "corps"}}
}

func TestCreateContent_PublishStampsPublishedAt(t *testing.T) {
	svc, _ := setupContentTest(t)

	entry, err := svc.CreateContent(context.Background(), CreateContentInput{
		Slug:         "rapport-annuel-2025",
		Type:         models.ContentNews,
		IsPublished:  true,
		Translations: frTitle("Rapport annuel 2025"),
	})
	require.NoError(t, err)
	require.NotNil(t, entry.PublishedAt)
	assert.WithinDuration(t, time.Now(), *entry.PublishedAt, 5*time.Second)
}

func TestCreateContent_DraftHasNoPublishedAt(t *testing.T) {
	svc, _ := setupContentTest(t)

	entry, err := svc.CreateContent(context.Background(), CreateContentInput{
		Slug:         "brouillon",
		Translations: frTitle("Brouillon"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContentPage, entry.Type)
	assert.Nil(t, entry.PublishedAt)
}

func TestUpdateContent_PublishOnce(t *testing.T) {
	svc, _ := setupContentTest(t)
	ctx := context.Background()

	entry, err := svc.CreateContent(ctx, CreateContentInput{
		Slug:         "a-propos",
		Translations: frTitle("À propos"),
	})
	require.NoError(t, err)

	published := true
	first, err := svc.UpdateContent(ctx, entry.ID, UpdateContentInput{IsPublished: &published})
	require.NoError(t, err)
	require.NotNil(t, first.PublishedAt)
	firstStamp := *first.PublishedAt

	unpublished := false
	_, err = svc.UpdateContent(ctx, entry.ID, UpdateContentInput{IsPublished: &unpublished})
	require.NoError(t, err)

	second, err := svc.UpdateContent(ctx, entry.ID, UpdateContentInput{IsPublished: &published})
	require.NoError(t, err)
	require.NotNil(t, second.PublishedAt)
	assert.Equal(t, firstStamp.UnixNano(), second.PublishedAt.UnixNano())
}

func TestCreateContent_Validation(t *testing.T) {
	svc, _ := setupContentTest(t)
	ctx := context.Background()

	_, err := svc.CreateContent(ctx, CreateContentInput{Translations: frTitle("X")})
	assert.ErrorIs(t, err, ErrSlugRequired)

	_, err = svc.CreateContent(ctx, CreateContentInput{Slug: "x", Type: "VIDEO", Translations: frTitle("X")})
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = svc.CreateContent(ctx, CreateContentInput{Slug: "x"})
	assert.ErrorIs(t, err, ErrNoTranslations)

	_, err = svc.CreateContent(ctx, CreateContentInput{
		Slug:         "x",
		Translations: []TranslationInput{{Language: models.LanguageFR, Title: ""}},
	})
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestListContent_TypeAndPublishedFilters(t *testing.T) {
	svc, _ := setupContentTest(t)
	ctx := context.Background()

	_, err := svc.CreateContent(ctx, CreateContentInput{
		Slug: "page-une", Type: models.ContentPage, IsPublished: true, Translations: frTitle("Page"),
	})
	require.NoError(t, err)
	_, err = svc.CreateContent(ctx, CreateContentInput{
		Slug: "actu-une", Type: models.ContentNews, IsPublished: true, Translations: frTitle("Actu publiée"),
	})
	require.NoError(t, err)
	_, err = svc.CreateContent(ctx, CreateContentInput{
		Slug: "actu-deux", Type: models.ContentNews, Translations: frTitle("Actu brouillon"),
	})
	require.NoError(t, err)

	news := models.ContentNews
	published := true
	out, total, err := svc.ListContent(ctx, Filter{Type: &news, IsPublished: &published})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, out, 1)
	assert.Equal(t, "actu-une", out[0].Slug)
}

func TestGetContent_MissingLanguageGivesEmptyTranslations(t *testing.T) {
	svc, _ := setupContentTest(t)
	ctx := context.Background()

	entry, err := svc.CreateContent(ctx, CreateContentInput{
		Slug:         "faq-livraison",
		Type:         models.ContentFAQ,
		Translations: frTitle("Livraison"),
	})
	require.NoError(t, err)

	en := models.LanguageEN
	got, err := svc.GetContent(ctx, entry.Slug, &en)
	require.NoError(t, err)
	assert.Empty(t, got.Translations)
}
