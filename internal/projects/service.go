package projects

import (
	"context"

	"espoir-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// TranslationInput is one localized text set for a project.
type TranslationInput struct {
	Language    models.Language
	Title       string
	Description string
	Excerpt     string
}

type CreateProjectInput struct {
	Slug         string
	Status       models.ProjectStatus
	GoalAmount   int64
	IsUrgent     bool
	IsFeatured   bool
	CoverImage   *string
	Translations []TranslationInput
}

// validateTranslations checks the set and dedups duplicate languages,
// keeping the last occurrence (callers supply the full set; the last value
// for a language wins).
func validateTranslations(in []TranslationInput) ([]TranslationInput, error) {
	if len(in) == 0 {
		return nil, ErrNoTranslations
	}
	byLang := make(map[models.Language]TranslationInput, len(in))
	order := make([]models.Language, 0, len(in))
	for _, tr := range in {
		if !tr.Language.Valid() {
			return nil, ErrInvalidLanguage
		}
		if tr.Title == "" {
			return nil, ErrTitleRequired
		}
		if _, seen := byLang[tr.Language]; !seen {
			order = append(order, tr.Language)
		}
		byLang[tr.Language] = tr
	}
	out := make([]TranslationInput, 0, len(order))
	for _, lang := range order {
		out = append(out, byLang[lang])
	}
	return out, nil
}

// CreateProject creates the root record and its translation fan-out in one
// nested write.
func (s *Service) CreateProject(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	if in.Slug == "" {
		return nil, ErrSlugRequired
	}
	if in.GoalAmount < 0 {
		return nil, ErrInvalidGoalAmount
	}
	translations, err := validateTranslations(in.Translations)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = models.ProjectDraft
	}

	var existing int64
	if err := s.DB.WithContext(ctx).Model(&models.Project{}).Where("slug = ?", in.Slug).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrSlugTaken
	}

	project := models.Project{
		Slug:       in.Slug,
		Status:     status,
		GoalAmount: in.GoalAmount,
		IsUrgent:   in.IsUrgent,
		IsFeatured: in.IsFeatured,
		CoverImage: in.CoverImage,
	}
	for _, tr := range translations {
		project.Translations = append(project.Translations, models.ProjectTranslation{
			Language:    tr.Language,
			Title:       tr.Title,
			Description: tr.Description,
			Excerpt:     tr.Excerpt,
		})
	}
	if err := s.DB.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProject returns a project by id or slug. With a language filter only the
// matching translation is loaded; a language never stored yields an empty
// translations slice, not a lookup failure — presentation falls back to a
// default language.
func (s *Service) GetProject(ctx context.Context, idOrSlug string, lang *models.Language) (*models.Project, error) {
	q := s.DB.WithContext(ctx)
	if lang != nil {
		q = q.Preload("Translations", "language = ?", *lang)
	} else {
		q = q.Preload("Translations")
	}

	var project models.Project
	var err error
	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		err = q.Where("id = ?", id).First(&project).Error
	} else {
		err = q.Where("slug = ?", idOrSlug).First(&project).Error
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

type UpdateProjectInput struct {
	GoalAmount *int64
	Status     *models.ProjectStatus
	IsUrgent   *bool
	IsFeatured *bool
	CoverImage *string
	// Translations, when non-nil, is the COMPLETE replacement set: existing
	// rows are deleted and recreated, so an omitted language is lost.
	Translations []TranslationInput
}

// UpdateProject applies root-field updates and the translation replacement in
// one DB transaction, so no reader observes the root without translations.
func (s *Service) UpdateProject(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (*models.Project, error) {
	var translations []TranslationInput
	if in.Translations != nil {
		var err error
		translations, err = validateTranslations(in.Translations)
		if err != nil {
			return nil, err
		}
	}
	if in.Status != nil {
		switch *in.Status {
		case models.ProjectDraft, models.ProjectActive, models.ProjectPaused,
			models.ProjectCompleted, models.ProjectCancelled:
		default:
			return nil, ErrInvalidStatus
		}
	}
	if in.GoalAmount != nil && *in.GoalAmount < 0 {
		return nil, ErrInvalidGoalAmount
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Where("id = ?", id).First(&project).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrProjectNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if in.GoalAmount != nil {
			updates["goal_amount"] = *in.GoalAmount
		}
		if in.Status != nil {
			updates["status"] = *in.Status
		}
		if in.IsUrgent != nil {
			updates["is_urgent"] = *in.IsUrgent
		}
		if in.IsFeatured != nil {
			updates["is_featured"] = *in.IsFeatured
		}
		if in.CoverImage != nil {
			updates["cover_image"] = *in.CoverImage
		}
		if len(updates) > 0 {
			if err := tx.Model(&project).Updates(updates).Error; err != nil {
				return err
			}
		}

		if translations != nil {
			if err := tx.Where("project_id = ?", id).Delete(&models.ProjectTranslation{}).Error; err != nil {
				return err
			}
			rows := make([]models.ProjectTranslation, 0, len(translations))
			for _, tr := range translations {
				rows = append(rows, models.ProjectTranslation{
					ProjectID:   id,
					Language:    tr.Language,
					Title:       tr.Title,
					Description: tr.Description,
					Excerpt:     tr.Excerpt,
				})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetProject(ctx, id.String(), nil)
}

// DeleteProject removes a project; translations cascade with it.
func (s *Service) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Where("id = ?", id).First(&project).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrProjectNotFound
			}
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectTranslation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}

// Filter is the typed list predicate for projects.
type Filter struct {
	Status     *models.ProjectStatus
	IsFeatured *bool
	IsUrgent   *bool
	Language   *models.Language
	Page       int
	Limit      int
}

func (f Filter) apply(q *gorm.DB) *gorm.DB {
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.IsFeatured != nil {
		q = q.Where("is_featured = ?", *f.IsFeatured)
	}
	if f.IsUrgent != nil {
		q = q.Where("is_urgent = ?", *f.IsUrgent)
	}
	return q
}

func (f Filter) page() (offset, limit int) {
	limit = f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit, limit
}

// ListProjects returns projects matching the filter, newest first, with
// translations narrowed to the requested language when one is given.
func (s *Service) ListProjects(ctx context.Context, f Filter) ([]models.Project, int64, error) {
	var total int64
	if err := f.apply(s.DB.WithContext(ctx).Model(&models.Project{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := f.apply(s.DB.WithContext(ctx))
	if f.Language != nil {
		q = q.Preload("Translations", "language = ?", *f.Language)
	} else {
		q = q.Preload("Translations")
	}

	offset, limit := f.page()
	var out []models.Project
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
