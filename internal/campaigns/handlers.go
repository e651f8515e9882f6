package campaigns

import (
	"time"

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
	Language    string `json:"language"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Excerpt     string `json:"excerpt"`
}

func toTranslationInputs(in []translationRequest) []TranslationInput {
	out := make([]TranslationInput, 0, len(in))
	for _, tr := range in {
		out = append(out, TranslationInput{
			Language:    models.Language(tr.Language),
			Title:       tr.Title,
			Description: tr.Description,
			Excerpt:     tr.Excerpt,
		})
	}
	return out
}

func parseProjectIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

type createCampaignRequest struct {
	Slug         string               `json:"slug"`
	Status       string               `json:"status"`
	GoalAmount   int64                `json:"goal_amount"`
	IsUrgent     bool                 `json:"is_urgent"`
	IsFeatured   bool                 `json:"is_featured"`
	CoverImage   *string              `json:"cover_image"`
	StartDate    time.Time            `json:"start_date"`
	EndDate      time.Time            `json:"end_date"`
	ProjectIDs   []string             `json:"project_ids"`
	Translations []translationRequest `json:"translations"`
}

// CreateCampaign POST /api/v1/campaigns
func (h *Handlers) CreateCampaign(c *fiber.Ctx) error {
	var req createCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	projectIDs, err := parseProjectIDs(req.ProjectIDs)
	if err != nil {
		return response.Error(c, "Invalid UUID format for project_ids", fiber.StatusBadRequest, nil)
	}

	campaign, err := h.Service.CreateCampaign(c.Context(), CreateCampaignInput{
		Slug:         req.Slug,
		Status:       models.ProjectStatus(req.Status),
		GoalAmount:   req.GoalAmount,
		IsUrgent:     req.IsUrgent,
		IsFeatured:   req.IsFeatured,
		CoverImage:   req.CoverImage,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		ProjectIDs:   projectIDs,
		Translations: toTranslationInputs(req.Translations),
	})
	if err != nil {
		switch err {
		case ErrSlugRequired, ErrNoTranslations, ErrInvalidLanguage, ErrTitleRequired, ErrInvalidWindow:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrSlugTaken:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		case ErrProjectNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			log.Error().Err(err).Msg("create campaign failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Campaign created", fiber.Map{"campaign": campaign}, nil)
}

// GetCampaign GET /api/v1/campaigns/:idOrSlug?language=FR
func (h *Handlers) GetCampaign(c *fiber.Ctx) error {
	lang, ok := languageQuery(c)
	if !ok {
		return response.Error(c, "Unsupported language", fiber.StatusBadRequest, nil)
	}
	campaign, err := h.Service.GetCampaign(c.Context(), c.Params("idOrSlug"), lang)
	if err != nil {
		if err == ErrCampaignNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Campaign fetched", fiber.Map{"campaign": campaign}, nil)
}

type updateCampaignRequest struct {
	GoalAmount   *int64               `json:"goal_amount"`
	Status       *string              `json:"status"`
	IsUrgent     *bool                `json:"is_urgent"`
	IsFeatured   *bool                `json:"is_featured"`
	CoverImage   *string              `json:"cover_image"`
	StartDate    *time.Time           `json:"start_date"`
	EndDate      *time.Time           `json:"end_date"`
	ProjectIDs   []string             `json:"project_ids"`
	Translations []translationRequest `json:"translations"`
}

// UpdateCampaign PUT /api/v1/campaigns/:id
func (h *Handlers) UpdateCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for campaign id", fiber.StatusBadRequest, nil)
	}
	var req updateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	in := UpdateCampaignInput{
		GoalAmount: req.GoalAmount,
		IsUrgent:   req.IsUrgent,
		IsFeatured: req.IsFeatured,
		CoverImage: req.CoverImage,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	if req.Status != nil {
		status := models.ProjectStatus(*req.Status)
		in.Status = &status
	}
	if req.ProjectIDs != nil {
		projectIDs, err := parseProjectIDs(req.ProjectIDs)
		if err != nil {
			return response.Error(c, "Invalid UUID format for project_ids", fiber.StatusBadRequest, nil)
		}
		in.ProjectIDs = projectIDs
	}
	if req.Translations != nil {
		in.Translations = toTranslationInputs(req.Translations)
	}

	campaign, err := h.Service.UpdateCampaign(c.Context(), id, in)
	if err != nil {
		switch err {
		case ErrNoTranslations, ErrInvalidLanguage, ErrTitleRequired, ErrInvalidWindow:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrCampaignNotFound, ErrProjectNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			log.Error().Err(err).Str("campaign_id", id.String()).Msg("update campaign failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Campaign updated", fiber.Map{"campaign": campaign}, nil)
}

// DeleteCampaign DELETE /api/v1/campaigns/:id
func (h *Handlers) DeleteCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for campaign id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteCampaign(c.Context(), id); err != nil {
		if err == ErrCampaignNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Campaign deleted", nil, nil)
}

// ListCampaigns GET /api/v1/campaigns?active=true&language=FR
func (h *Handlers) ListCampaigns(c *fiber.Ctx) error {
	var f Filter
	if v := c.Query("status"); v != "" {
		status := models.ProjectStatus(v)
		f.Status = &status
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true"
		f.IsFeatured = &featured
	}
	if c.Query("active") == "true" {
		now := time.Now()
		f.ActiveAt = &now
	}
	lang, ok := languageQuery(c)
	if !ok {
		return response.Error(c, "Unsupported language", fiber.StatusBadRequest, nil)
	}
	f.Language = lang
	f.Page = c.QueryInt("page", 1)
	f.Limit = c.QueryInt("limit", 20)

	out, total, err := h.Service.ListCampaigns(c.Context(), f)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Campaigns fetched", fiber.Map{"campaigns": out}, response.Pagination{
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
