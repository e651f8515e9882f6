package projects

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

type createProjectRequest struct {
	Slug         string               `json:"slug"`
	Status       string               `json:"status"`
	GoalAmount   int64                `json:"goal_amount"`
	IsUrgent     bool                 `json:"is_urgent"`
	IsFeatured   bool                 `json:"is_featured"`
	CoverImage   *string              `json:"cover_image"`
	Translations []translationRequest `json:"translations"`
}

// CreateProject POST /api/v1/projects
func (h *Handlers) CreateProject(c *fiber.Ctx) error {
	var req createProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	project, err := h.Service.CreateProject(c.Context(), CreateProjectInput{
		Slug:         req.Slug,
		Status:       models.ProjectStatus(req.Status),
		GoalAmount:   req.GoalAmount,
		IsUrgent:     req.IsUrgent,
		IsFeatured:   req.IsFeatured,
		CoverImage:   req.CoverImage,
		Translations: toTranslationInputs(req.Translations),
	})
	if err != nil {
		switch err {
		case ErrSlugRequired, ErrNoTranslations, ErrInvalidLanguage, ErrTitleRequired, ErrInvalidGoalAmount:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrSlugTaken:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			log.Error().Err(err).Msg("create project failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Project created", fiber.Map{"project": project}, nil)
}

// GetProject GET /api/v1/projects/:idOrSlug?language=FR
func (h *Handlers) GetProject(c *fiber.Ctx) error {
	lang, ok := languageQuery(c)
	if !ok {
		return response.Error(c, "Unsupported language", fiber.StatusBadRequest, nil)
	}
	project, err := h.Service.GetProject(c.Context(), c.Params("idOrSlug"), lang)
	if err != nil {
		if err == ErrProjectNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Project fetched", fiber.Map{"project": project}, nil)
}

type updateProjectRequest struct {
	GoalAmount   *int64               `json:"goal_amount"`
	Status       *string              `json:"status"`
	IsUrgent     *bool                `json:"is_urgent"`
	IsFeatured   *bool                `json:"is_featured"`
	CoverImage   *string              `json:"cover_image"`
	Translations []translationRequest `json:"translations"`
}

// UpdateProject PUT /api/v1/projects/:id
func (h *Handlers) UpdateProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for project id", fiber.StatusBadRequest, nil)
	}
	var req updateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	in := UpdateProjectInput{
		GoalAmount: req.GoalAmount,
		IsUrgent:   req.IsUrgent,
		IsFeatured: req.IsFeatured,
		CoverImage: req.CoverImage,
	}
	if req.Status != nil {
		status := models.ProjectStatus(*req.Status)
		in.Status = &status
	}
	if req.Translations != nil {
		in.Translations = toTranslationInputs(req.Translations)
	}

	project, err := h.Service.UpdateProject(c.Context(), id, in)
	if err != nil {
		switch err {
		case ErrNoTranslations, ErrInvalidLanguage, ErrTitleRequired, ErrInvalidStatus, ErrInvalidGoalAmount:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrProjectNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			log.Error().Err(err).Str("project_id", id.String()).Msg("update project failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Project updated", fiber.Map{"project": project}, nil)
}

// DeleteProject DELETE /api/v1/projects/:id
func (h *Handlers) DeleteProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for project id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteProject(c.Context(), id); err != nil {
		if err == ErrProjectNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Project deleted", nil, nil)
}

// ListProjects GET /api/v1/projects
func (h *Handlers) ListProjects(c *fiber.Ctx) error {
	var f Filter
	if v := c.Query("status"); v != "" {
		status := models.ProjectStatus(v)
		f.Status = &status
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true"
		f.IsFeatured = &featured
	}
	if v := c.Query("urgent"); v != "" {
		urgent := v == "true"
		f.IsUrgent = &urgent
	}
	lang, ok := languageQuery(c)
	if !ok {
		return response.Error(c, "Unsupported language", fiber.StatusBadRequest, nil)
	}
	f.Language = lang
	f.Page = c.QueryInt("page", 1)
	f.Limit = c.QueryInt("limit", 20)

	out, total, err := h.Service.ListProjects(c.Context(), f)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Projects fetched", fiber.Map{"projects": out}, response.Pagination{
		Page:  f.Page,
		Limit: f.Limit,
		Total: total,
	})
}

// languageQuery parses the optional ?language= parameter; ok is false when a
// value was supplied but is not a supported language.
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
