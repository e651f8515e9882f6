package campaigns

import (
	"context"
	"time"

	"espoir-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type TranslationInput struct {
	Language    models.Language
	Title       string
	Description string
	Excerpt     string
}

type CreateCampaignInput struct {
	Slug         string
	Status       models.ProjectStatus
	GoalAmount   int64
	IsUrgent     bool
	IsFeatured   bool
	CoverImage   *string
	StartDate    time.Time
	EndDate      time.Time
	ProjectIDs   []uuid.UUID
	Translations []TranslationInput
}

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

// CreateCampaign creates the campaign, its translations, and the project
// links in one nested write.
func (s *Service) CreateCampaign(ctx context.Context, in CreateCampaignInput) (*models.Campaign, error) {
	if in.Slug == "" {
		return nil, ErrSlugRequired
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, ErrInvalidWindow
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
	if err := s.DB.WithContext(ctx).Model(&models.Campaign{}).Where("slug = ?", in.Slug).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrSlugTaken
	}

	var projects []models.Project
	if len(in.ProjectIDs) > 0 {
		if err := s.DB.WithContext(ctx).Where("id IN ?", in.ProjectIDs).Find(&projects).Error; err != nil {
			return nil, err
		}
		if len(projects) != len(in.ProjectIDs) {
			return nil, ErrProjectNotFound
		}
	}

	campaign := models.Campaign{
		Slug:       in.Slug,
		Status:     status,
		GoalAmount: in.GoalAmount,
		IsUrgent:   in.IsUrgent,
		IsFeatured: in.IsFeatured,
		CoverImage: in.CoverImage,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Projects:   projects,
	}
	for _, tr := range translations {
		campaign.Translations = append(campaign.Translations, models.CampaignTranslation{
			Language:    tr.Language,
			Title:       tr.Title,
			Description: tr.Description,
			Excerpt:     tr.Excerpt,
		})
	}
	if err := s.DB.WithContext(ctx).Create(&campaign).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

// GetCampaign returns a campaign by id or slug with its linked projects.
// Language filter semantics match projects: a missing language yields an
// empty translations slice.
func (s *Service) GetCampaign(ctx context.Context, idOrSlug string, lang *models.Language) (*models.Campaign, error) {
	q := s.DB.WithContext(ctx).Preload("Projects")
	if lang != nil {
		q = q.Preload("Translations", "language = ?", *lang)
	} else {
		q = q.Preload("Translations")
	}

	var campaign models.Campaign
	var err error
	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		err = q.Where("id = ?", id).First(&campaign).Error
	} else {
		err = q.Where("slug = ?", idOrSlug).First(&campaign).Error
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return &campaign, nil
}

type UpdateCampaignInput struct {
	GoalAmount *int64
	Status     *models.ProjectStatus
	IsUrgent   *bool
	IsFeatured *bool
	CoverImage *string
	StartDate  *time.Time
	EndDate    *time.Time
	// ProjectIDs, when non-nil, replaces the linked project set.
	ProjectIDs []uuid.UUID
	// Translations, when non-nil, is the complete replacement set.
	Translations []TranslationInput
}

// UpdateCampaign applies root updates, link replacement, and translation
// replacement in one DB transaction.
func (s *Service) UpdateCampaign(ctx context.Context, id uuid.UUID, in UpdateCampaignInput) (*models.Campaign, error) {
	var translations []TranslationInput
	if in.Translations != nil {
		var err error
		translations, err = validateTranslations(in.Translations)
		if err != nil {
			return nil, err
		}
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var campaign models.Campaign
		if err := tx.Where("id = ?", id).First(&campaign).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrCampaignNotFound
			}
			return err
		}

		start, end := campaign.StartDate, campaign.EndDate
		if in.StartDate != nil {
			start = *in.StartDate
		}
		if in.EndDate != nil {
			end = *in.EndDate
		}
		if !end.After(start) {
			return ErrInvalidWindow
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
		if in.StartDate != nil {
			updates["start_date"] = *in.StartDate
		}
		if in.EndDate != nil {
			updates["end_date"] = *in.EndDate
		}
		if len(updates) > 0 {
			if err := tx.Model(&campaign).Updates(updates).Error; err != nil {
				return err
			}
		}

		if in.ProjectIDs != nil {
			var projects []models.Project
			if len(in.ProjectIDs) > 0 {
				if err := tx.Where("id IN ?", in.ProjectIDs).Find(&projects).Error; err != nil {
					return err
				}
				if len(projects) != len(in.ProjectIDs) {
					return ErrProjectNotFound
				}
			}
			if err := tx.Model(&campaign).Association("Projects").Replace(projects); err != nil {
				return err
			}
		}

		if translations != nil {
			if err := tx.Where("campaign_id = ?", id).Delete(&models.CampaignTranslation{}).Error; err != nil {
				return err
			}
			rows := make([]models.CampaignTranslation, 0, len(translations))
			for _, tr := range translations {
				rows = append(rows, models.CampaignTranslation{
					CampaignID:  id,
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
	return s.GetCampaign(ctx, id.String(), nil)
}

// DeleteCampaign removes a campaign, its translations, and its project links.
func (s *Service) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var campaign models.Campaign
		if err := tx.Where("id = ?", id).First(&campaign).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrCampaignNotFound
			}
			return err
		}
		if err := tx.Model(&campaign).Association("Projects").Clear(); err != nil {
			return err
		}
		if err := tx.Where("campaign_id = ?", id).Delete(&models.CampaignTranslation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&campaign).Error
	})
}

// Filter is the typed list predicate for campaigns.
type Filter struct {
	Status     *models.ProjectStatus
	IsFeatured *bool
	// ActiveAt narrows to campaigns whose date window contains the instant.
	ActiveAt *time.Time
	Language *models.Language
	Page     int
	Limit    int
}

func (f Filter) apply(q *gorm.DB) *gorm.DB {
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.IsFeatured != nil {
		q = q.Where("is_featured = ?", *f.IsFeatured)
	}
	if f.ActiveAt != nil {
		q = q.Where("start_date <= ? AND end_date >= ?", *f.ActiveAt, *f.ActiveAt)
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

// ListCampaigns returns campaigns matching the filter, newest first.
func (s *Service) ListCampaigns(ctx context.Context, f Filter) ([]models.Campaign, int64, error) {
	base := f.apply(s.DB.WithContext(ctx).Model(&models.Campaign{}))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := f.apply(s.DB.WithContext(ctx))
	if f.Language != nil {
		q = q.Preload("Translations", "language = ?", *f.Language)
	} else {
		q = q.Preload("Translations")
	}

	offset, limit := f.page()
	var out []models.Campaign
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
