package projects

import (
	"context"
	"net/http/httptest"
	"testing"

	"espoir-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProjectTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Project{}, &models.ProjectTranslation{}))
	return &Service{DB: db}, db
}

func frAr() []TranslationInput {
	return []TranslationInput{
		{Language: models.LanguageFR, Title: "Un puits pour Kaolack", Description: "Forage d'un puits"},
		{Language: models.LanguageAR, Title: "بئر لكاولاك"},
	}
}

func TestCreateProject_WithTranslations(t *testing.T) {
	svc, _ := setupProjectTest(t)

	project, err := svc.CreateProject(context.Background(), CreateProjectInput{
		Slug:         "puits-kaolack",
		GoalAmount:   25_000_000,
		Translations: frAr(),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectDraft, project.Status)
	assert.Len(t, project.Translations, 2)
	assert.Equal(t, int64(0), project.CollectedAmount)
	assert.Equal(t, 0, project.DonorCount)
}

func TestCreateProject_DuplicateLanguageLastWins(t *testing.T) {
	svc, _ := setupProjectTest(t)

	project, err := svc.CreateProject(context.Background(), CreateProjectInput{
		Slug: "ecole-thies",
		Translations: []TranslationInput{
			{Language: models.LanguageFR, Title: "Premier titre"},
			{Language: models.LanguageFR, Title: "Titre final"},
		},
	})
	require.NoError(t, err)
	require.Len(t, project.Translations, 1)
	assert.Equal(t, "Titre final", project.Translations[0].Title)
}

func TestCreateProject_Validation(t *testing.T) {
	svc, _ := setupProjectTest(t)
	ctx := context.Background()

	_, err := svc.CreateProject(ctx, CreateProjectInput{Slug: "x"})
	assert.ErrorIs(t, err, ErrNoTranslations)

	_, err = svc.CreateProject(ctx, CreateProjectInput{
		Slug:         "x",
		Translations: []TranslationInput{{Language: "DE", Title: "Titel"}},
	})
	assert.ErrorIs(t, err, ErrInvalidLanguage)

	_, err = svc.CreateProject(ctx, CreateProjectInput{
		Slug:         "x",
		GoalAmount:   -1,
		Translations: frAr(),
	})
	assert.ErrorIs(t, err, ErrInvalidGoalAmount)
}

func TestCreateProject_SlugConflict(t *testing.T) {
	svc, _ := setupProjectTest(t)
	ctx := context.Background()

	_, err := svc.CreateProject(ctx, CreateProjectInput{Slug: "puits-kaolack", Translations: frAr()})
	require.NoError(t, err)

	_, err = svc.CreateProject(ctx, CreateProjectInput{Slug: "puits-kaolack", Translations: frAr()})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestGetProject_LanguageFilterMissingLanguageIsEmptyNot404(t *testing.T) {
	svc, _ := setupProjectTest(t)

	created, err := svc.CreateProject(context.Background(), CreateProjectInput{
		Slug:         "puits-kaolack",
		Translations: frAr(), // FR and AR only
	})
	require.NoError(t, err)

	en := models.LanguageEN
	project, err := svc.GetProject(context.Background(), "puits-kaolack", &en)
	require.NoError(t, err)
	assert.Equal(t, created.ID, project.ID)
	assert.Empty(t, project.Translations)

	fr := models.LanguageFR
	project, err = svc.GetProject(context.Background(), created.ID.String(), &fr)
	require.NoError(t, err)
	require.Len(t, project.Translations, 1)
	assert.Equal(t, models.LanguageFR, project.Translations[0].Language)
}

func TestUpdateProject_ReplaceTranslationsLeavesNoStaleRows(t *testing.T) {
	svc, db := setupProjectTest(t)

	created, err := svc.CreateProject(context.Background(), CreateProjectInput{
		Slug:         "puits-kaolack",
		Translations: frAr(),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProject(context.Background(), created.ID, UpdateProjectInput{
		Translations: []TranslationInput{
			{Language: models.LanguageEN, Title: "A well for Kaolack"},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Translations, 1)
	assert.Equal(t, models.LanguageEN, updated.Translations[0].Language)

	var rows int64
	require.NoError(t, db.Model(&models.ProjectTranslation{}).Where("project_id = ?", created.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestUpdateProject_RootFieldsAndStatus(t *testing.T) {
	svc, _ := setupProjectTest(t)

	created, err := svc.CreateProject(context.Background(), CreateProjectInput{
		Slug:         "puits-kaolack",
		Translations: frAr(),
	})
	require.NoError(t, err)

	active := models.ProjectActive
	goal := int64(30_000_000)
	featured := true
	updated, err := svc.UpdateProject(context.Background(), created.ID, UpdateProjectInput{
		Status:     &active,
		GoalAmount: &goal,
		IsFeatured: &featured,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectActive, updated.Status)
	assert.Equal(t, int64(30_000_000), updated.GoalAmount)
	assert.True(t, updated.IsFeatured)
	// Untouched translations survive a root-only update.
	assert.Len(t, updated.Translations, 2)

	bogus := models.ProjectStatus("ARCHIVED")
	_, err = svc.UpdateProject(context.Background(), created.ID, UpdateProjectInput{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeleteProject_CascadesTranslations(t *testing.T) {
	svc, db := setupProjectTest(t)

	created, err := svc.CreateProject(context.Background(), CreateProjectInput{
		Slug:         "puits-kaolack",
		Translations: frAr(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProject(context.Background(), created.ID))

	_, err = svc.GetProject(context.Background(), created.ID.String(), nil)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	var rows int64
	require.NoError(t, db.Model(&models.ProjectTranslation{}).Where("project_id = ?", created.ID).Count(&rows).Error)
	assert.Equal(t, int64(0), rows)
}

func TestListProjects_Filters(t *testing.T) {
	svc, _ := setupProjectTest(t)
	ctx := context.Background()

	_, err := svc.CreateProject(ctx, CreateProjectInput{
		Slug: "a", Status: models.ProjectActive, IsFeatured: true, Translations: frAr(),
	})
	require.NoError(t, err)
	_, err = svc.CreateProject(ctx, CreateProjectInput{
		Slug: "b", Status: models.ProjectActive, Translations: frAr(),
	})
	require.NoError(t, err)
	_, err = svc.CreateProject(ctx, CreateProjectInput{
		Slug: "c", Status: models.ProjectDraft, Translations: frAr(),
	})
	require.NoError(t, err)

	active := models.ProjectActive
	out, total, err := svc.ListProjects(ctx, Filter{Status: &active})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, out, 2)

	featured := true
	out, total, err = svc.ListProjects(ctx, Filter{Status: &active, IsFeatured: &featured})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].Slug)

	fr := models.LanguageFR
	out, _, err = svc.ListProjects(ctx, Filter{Language: &fr})
	require.NoError(t, err)
	for _, p := range out {
		require.Len(t, p.Translations, 1)
		assert.Equal(t, models.LanguageFR, p.Translations[0].Language)
	}
}

func TestGetProjectHandler_MissingLanguageReturns200(t *testing.T) {
	svc, _ := setupProjectTest(t)
	h := &Handlers{Service: svc}

	_, err := svc.CreateProject(context.Background(), CreateProjectInput{
		Slug:         "puits-kaolack",
		Translations: frAr(),
	})
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/projects/:idOrSlug", h.GetProject)

	resp, err := app.Test(httptest.NewRequest("GET", "/projects/puits-kaolack?language=EN", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/projects/"+uuid.New().String(), nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/projects/puits-kaolack?language=DE", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
