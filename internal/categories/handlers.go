package categories

import (
	"espoir-backend/internal/models"
	"espoir-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *Service
}

type translationRequest struct {
	Language string `json:"language"`
	Name     string `json:"name"`
}

func toTranslationInputs(in []translationRequest) []TranslationInput {
	out := make([]TranslationInput, 0, len(in))
	for _, tr := range in {
		out = append(out, TranslationInput{
			Language: models.Language(tr.Language),
			Name:     tr.Name,
		})
	}
	return out
}

type createCategoryRequest struct {
	Slug         string               `json:"slug"`
	SortOrder    int                  `json:"sort_order"`
	Translations []translationRequest `json:"translations"`
}

// CreateCategory POST /api/v1/categories
func (h *Handlers) CreateCategory(c *fiber.Ctx) error {
	var req createCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	category, err := h.Service.CreateCategory(c.Context(), CreateCategoryInput{
		Slug:         req.Slug,
		SortOrder:    req.SortOrder,
		Translations: toTranslationInputs(req.Translations),
	})
	if err != nil {
		switch err {
		case ErrSlugRequired, ErrNoTranslations, ErrInvalidLanguage, ErrNameRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrSlugTaken:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			log.Error().Err(err).Msg("create category failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Category created", fiber.Map{"category": category}, nil)
}

// GetCategory GET /api/v1/categories/:idOrSlug?language=FR
func (h *Handlers) GetCategory(c *fiber.Ctx) error {
	lang, ok := languageQuery(c)
	if !ok {
		return response.Error(c, "Unsupported language", fiber.StatusBadRequest, nil)
	}
	category, err := h.Service.GetCategory(c.Context(), c.Params("idOrSlug"), lang)
	if err != nil {
		if err == ErrCategoryNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Category fetched", fiber.Map{"category": category}, nil)
}

type updateCategoryRequest struct {
	SortOrder    *int                 `json:"sort_order"`
	Translations []translationRequest `json:"translations"`
}

// UpdateCategory PUT /api/v1/categories/:id
func (h *Handlers) UpdateCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for category id", fiber.StatusBadRequest, nil)
	}
	var req updateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	in := UpdateCategoryInput{SortOrder: req.SortOrder}
	if req.Translations != nil {
		in.Translations = toTranslationInputs(req.Translations)
	}

	category, err := h.Service.UpdateCategory(c.Context(), id, in)
	if err != nil {
		switch err {
		case ErrNoTranslations, ErrInvalidLanguage, ErrNameRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrCategoryNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			log.Error().Err(err).Str("category_id", id.String()).Msg("update category failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Category updated", fiber.Map{"category": category}, nil)
}

// DeleteCategory DELETE /api/v1/categories/:id
func (h *Handlers) DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for category id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteCategory(c.Context(), id); err != nil {
		if err == ErrCategoryNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Category deleted", nil, nil)
}

// ListCategories GET /api/v1/categories
func (h *Handlers) ListCategories(c *fiber.Ctx) error {
	lang, ok := languageQuery(c)
	if !ok {
		return response.Error(c, "Unsupported language", fiber.StatusBadRequest, nil)
	}
	out, err := h.Service.ListCategories(c.Context(), lang)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Categories fetched", fiber.Map{"categories": out}, nil)
}

func languageQuery(c *fiber.Ctx) (*models.Language, bool) {
	v := c.Query("language")
	if v == "" {
		return nil, true
	}
	lang, err := models.ParseLanguage(v)
	if err != nil {
		return nil, false
	}
	return &lang, true
}
