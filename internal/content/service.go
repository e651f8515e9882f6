package content

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

func validType(t models.ContentType) bool {
	switch t {
	case models.ContentPage, models.ContentNews, models.ContentFAQ:
		return true
	}
	return false
}

type TranslationInput struct {
	Language models.Language
	Title    string
	Body     string
	Excerpt  string
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

type CreateContentInput struct {
	Slug         string
	Type         models.ContentType
	IsPublished  bool
	CoverImage   *string
	Translations []TranslationInput
}

func (s *Service) CreateContent(ctx context.Context, in CreateContentInput) (*models.Content, error) {
	if in.Slug == "" {
		return nil, ErrSlugRequired
	}
	if in.Type == "" {
		in.Type = models.ContentPage
	}
	if !validType(in.Type) {
		return nil, ErrInvalidType
	}
	translations, err := validateTranslations(in.Translations)
	if err != nil {
		return nil, err
	}

	var existing int64
	if err := s.DB.WithContext(ctx).Model(&models.Content{}).Where("slug = ?", in.Slug).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrSlugTaken
	}

	entry := models.Content{
		Slug:        in.Slug,
		Type:        in.Type,
		IsPublished: in.IsPublished,
		CoverImage:  in.CoverImage,
	}
	if in.IsPublished {
		now := time.Now()
		entry.PublishedAt = &now
	}
	for _, tr := range translations {
		entry.Translations = append(entry.Translations, models.ContentTranslation{
			Language: tr.Language,
			Title:    tr.Title,
			Body:     tr.Body,
			Excerpt:  tr.Excerpt,
		})
	}
	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Service) GetContent(ctx context.Context, idOrSlug string, lang *models.Language) (*models.Content, error) {
	q := s.DB.WithContext(ctx)
	if lang != nil {
		q = q.Preload("Translations", "language = ?", *lang)
	} else {
		q = q.Preload("Translations")
	}

	var entry models.Content
	var err error
	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		err = q.Where("id = ?", id).First(&entry).Error
	} else {
		err = q.Where("slug = ?", idOrSlug).First(&entry).Error
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return &entry, nil
}

type UpdateContentInput struct {
	Type        *models.ContentType
	IsPublished *bool
	CoverImage  *string
	// Translations, when non-nil, is the complete replacement set.
	Translations []TranslationInput
}

func (s *Service) UpdateContent(ctx context.Context, id uuid.UUID, in UpdateContentInput) (*models.Content, error) {
	if in.Type != nil && !validType(*in.Type) {
		return nil, ErrInvalidType
	}
	var translations []TranslationInput
	if in.Translations != nil {
		var err error
		translations, err = validateTranslations(in.Translations)
		if err != nil {
			return nil, err
		}
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.Content
		if err := tx.Where("id = ?", id).First(&entry).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrContentNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if in.Type != nil {
			updates["type"] = *in.Type
		}
		if in.CoverImage != nil {
			updates["cover_image"] = *in.CoverImage
		}
		if in.IsPublished != nil {
			updates["is_published"] = *in.IsPublished
			// published_at records the first publication only
			if *in.IsPublished && entry.PublishedAt == nil {
				updates["published_at"] = time.Now()
			}
		}
		if len(updates) > 0 {
			if err := tx.Model(&entry).Updates(updates).Error; err != nil {
				return err
			}
		}

		if translations != nil {
			if err := tx.Where("content_id = ?", id).Delete(&models.ContentTranslation{}).Error; err != nil {
				return err
			}
			rows := make([]models.ContentTranslation, 0, len(translations))
			for _, tr := range translations {
				rows = append(rows, models.ContentTranslation{
					ContentID: id,
					Language:  tr.Language,
					Title:     tr.Title,
					Body:      tr.Body,
					Excerpt:   tr.Excerpt,
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
	return s.GetContent(ctx, id.String(), nil)
}

func (s *Service) DeleteContent(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.Content
		if err := tx.Where("id = ?", id).First(&entry).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrContentNotFound
			}
			return err
		}
		if err := tx.Where("content_id = ?", id).Delete(&models.ContentTranslation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entry).Error
	})
}

type Filter struct {
	Type        *models.ContentType
	IsPublished *bool
	Language    *models.Language
	Page        int
	Limit       int
}

func (f Filter) apply(db *gorm.DB) *gorm.DB {
	if f.Type != nil {
		db = db.Where("type = ?", *f.Type)
	}
	if f.IsPublished != nil {
		db = db.Where("is_published = ?", *f.IsPublished)
	}
	return db
}

func (f Filter) page(db *gorm.DB) *gorm.DB {
	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return db.Offset((page - 1) * limit).Limit(limit)
}

func (s *Service) ListContent(ctx context.Context, f Filter) ([]models.Content, int64, error) {
	base := f.apply(s.DB.WithContext(ctx).Model(&models.Content{}))

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

	var out []models.Content
	if err := f.page(q).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
