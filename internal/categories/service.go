package categories

import (
	"context"

	"espoir-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type TranslationInput struct {
	Language models.Language
	Name     string
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
		if tr.Name == "" {
			return nil, ErrNameRequired
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

type CreateCategoryInput struct {
	Slug         string
	SortOrder    int
	Translations []TranslationInput
}

func (s *Service) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	if in.Slug == "" {
		return nil, ErrSlugRequired
	}
	translations, err := validateTranslations(in.Translations)
	if err != nil {
		return nil, err
	}

	var existing int64
	if err := s.DB.WithContext(ctx).Model(&models.Category{}).Where("slug = ?", in.Slug).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrSlugTaken
	}

	category := models.Category{Slug: in.Slug, SortOrder: in.SortOrder}
	for _, tr := range translations {
		category.Translations = append(category.Translations, models.CategoryTranslation{
			Language: tr.Language,
			Name:     tr.Name,
		})
	}
	if err := s.DB.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Service) GetCategory(ctx context.Context, idOrSlug string, lang *models.Language) (*models.Category, error) {
	q := s.DB.WithContext(ctx)
	if lang != nil {
		q = q.Preload("Translations", "language = ?", *lang)
	} else {
		q = q.Preload("Translations")
	}

	var category models.Category
	var err error
	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		err = q.Where("id = ?", id).First(&category).Error
	} else {
		err = q.Where("slug = ?", idOrSlug).First(&category).Error
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

type UpdateCategoryInput struct {
	SortOrder *int
	// Translations, when non-nil, is the complete replacement set.
	Translations []TranslationInput
}

func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, in UpdateCategoryInput) (*models.Category, error) {
	var translations []TranslationInput
	if in.Translations != nil {
		var err error
		translations, err = validateTranslations(in.Translations)
		if err != nil {
			return nil, err
		}
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Where("id = ?", id).First(&category).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrCategoryNotFound
			}
			return err
		}
		if in.SortOrder != nil {
			if err := tx.Model(&category).Update("sort_order", *in.SortOrder).Error; err != nil {
				return err
			}
		}
		if translations != nil {
			if err := tx.Where("category_id = ?", id).Delete(&models.CategoryTranslation{}).Error; err != nil {
				return err
			}
			rows := make([]models.CategoryTranslation, 0, len(translations))
			for _, tr := range translations {
				rows = append(rows, models.CategoryTranslation{
					CategoryID: id,
					Language:   tr.Language,
					Name:       tr.Name,
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
	return s.GetCategory(ctx, id.String(), nil)
}

func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Where("id = ?", id).First(&category).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrCategoryNotFound
			}
			return err
		}
		if err := tx.Exec(`DELETE FROM "ProductCategories" WHERE category_id = ?`, id).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.CategoryTranslation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}

// ListCategories returns all categories ordered by sort order.
func (s *Service) ListCategories(ctx context.Context, lang *models.Language) ([]models.Category, error) {
	q := s.DB.WithContext(ctx)
	if lang != nil {
		q = q.Preload("Translations", "language = ?", *lang)
	} else {
		q = q.Preload("Translations")
	}
	var out []models.Category
	if err := q.Order("sort_order ASC, created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
