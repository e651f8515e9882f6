package content

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
	Title    string `json:"title"`
	Body     string `json:"body"`
	Excerpt  string `json:"excerpt"`
}

func toTranslationInputs(in []translationRequest) []TranslationInput {
	out := make([]TranslationInput, 0, len(in))
	for _, tr := range in {
		out = append(out, TranslationInput{
			Language: models.Language(tr.Language),
			Title:    tr.Title,
			Body:     tr.Body,
			Excerpt:  tr.Excerpt,
		})
	}
	return out
}

type createContentRequest struct {
	Slug         string               `json:"slug"`
	Type         string               `json:"type"`
	IsPublished  bool                 `json:"is_published"`
	CoverImage   *string              `json:"cover_image"`
	Translations []translationRequest `json:"translations"`
}

// CreateContent POST /api/v1/content
func (h *Handlers) CreateContent(c *fiber.Ctx) error {
	var req createContentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	entry, err := h.Service.CreateContent(c.Context(), CreateContentInput{
		Slug:         req.Slug,
		Type:         models.ContentType(req.Type),
		IsPublished:  req.IsPublished,
		CoverImage:   req.CoverImage,
		Translations: toTranslationInputs(req.Translations),
	})
	if err != nil {
		switch err {
		case ErrSlugRequired, ErrInvalidType, ErrNoTranslations, ErrInvalidLanguage, ErrTitleRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrSlugTaken:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			log.Error().Err(err).Msg("create content failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Content created", fiber.Map{"content": entry}, nil)
}

// GetContent GET /api/v1/content/:idOrSlug?language=FR
func (h *Handlers) GetContent(c *fiber.Ctx) error {
	lang, ok := languageQuery(c)
	if !ok {
		return response.Error(c, "Unsupported language", fiber.StatusBadRequest, nil)
	}
	entry, err := h.Service.GetContent(c.Context(), c.Params("idOrSlug"), lang)
	if err != nil {
		if err == ErrContentNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Content fetched", fiber.Map{"content": entry}, nil)
}

type updateContentRequest struct {
	Type         *string              `json:"type"`
	IsPublished  *bool                `json:"is_published"`
	CoverImage   *string              `json:"cover_image"`
	Translations []translationRequest `json:"translations"`
}

// UpdateContent PUT /api/v1/content/:id
func (h *Handlers) UpdateContent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for content id", fiber.StatusBadRequest, nil)
	}
	var req updateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	in := UpdateContentInput{
		IsPublished: req.IsPublished,
		CoverImage:  req.CoverImage,
	}
	if req.Type != nil {
		contentType := models.ContentType(*req.Type)
		in.Type = &contentType
	}
	if req.Translations != nil {
		in.Translations = toTranslationInputs(req.Translations)
	}

	entry, err := h.Service.UpdateContent(c.Context(), id, in)
	if err != nil {
		switch err {
		case ErrInvalidType, ErrNoTranslations, ErrInvalidLanguage, ErrTitleRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrContentNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			log.Error().Err(err).Str("content_id", id.String()).Msg("update content failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Content updated", fiber.Map{"content": entry}, nil)
}

// DeleteContent DELETE /api/v1/content/:id
func (h *Handlers) DeleteContent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for content id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteContent(c.Context(), id); err != nil {
		if err == ErrContentNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Content deleted", nil, nil)
}

// ListContent GET /api/v1/content?type=NEWS&published=true
func (h *Handlers) ListContent(c *fiber.Ctx) error {
	var f Filter
	if v := c.Query("type"); v != "" {
		contentType := models.ContentType(v)
		f.Type = &contentType
	}
	if v := c.Query("published"); v != "" {
		published := v == "true"
		f.IsPublished = &published
	}
	lang, ok := languageQuery(c)
	if !ok {
		return response.Error(c, "Unsupported language", fiber.StatusBadRequest, nil)
	}
	f.Language = lang
	f.Page = c.QueryInt("page", 1)
	f.Limit = c.QueryInt("limit", 20)

	out, total, err := h.Service.ListContent(c.Context(), f)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Content fetched", fiber.Map{"content": out}, response.Pagination{
		Page:  f.Page,
		Limit: f.Limit,
		Total: total,
	})
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
