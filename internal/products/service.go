package products

import (
	"context"

	"espoir-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type TranslationInput struct {
	Language    models.Language
	Name        string
	Description string
}

type CreateProductInput struct {
	Slug         string
	Price        int64
	ComparePrice *int64
	Stock        int
	IsActive     bool
	IsFeatured   bool
	Images       datatypes.JSON
	CategoryIDs  []uuid.UUID
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

// CreateProduct creates the product, its translations, and its category links
// in one nested write.
func (s *Service) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if in.Slug == "" {
		return nil, ErrSlugRequired
	}
	if in.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if in.Stock < 0 {
		return nil, ErrInvalidStock
	}
	translations, err := validateTranslations(in.Translations)
	if err != nil {
		return nil, err
	}

	var existing int64
	if err := s.DB.WithContext(ctx).Model(&models.Product{}).Where("slug = ?", in.Slug).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrSlugTaken
	}

	var categories []models.Category
	if len(in.CategoryIDs) > 0 {
		if err := s.DB.WithContext(ctx).Where("id IN ?", in.CategoryIDs).Find(&categories).Error; err != nil {
			return nil, err
		}
		if len(categories) != len(in.CategoryIDs) {
			return nil, ErrCategoryNotFound
		}
	}

	product := models.Product{
		Slug:         in.Slug,
		Price:        in.Price,
		ComparePrice: in.ComparePrice,
		Stock:        in.Stock,
		IsActive:     in.IsActive,
		IsFeatured:   in.IsFeatured,
		Images:       in.Images,
		Categories:   categories,
	}
	for _, tr := range translations {
		product.Translations = append(product.Translations, models.ProductTranslation{
			Language:    tr.Language,
			Name:        tr.Name,
			Description: tr.Description,
		})
	}
	if err := s.DB.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProduct returns a product by id or slug; language filter semantics match
// the other translatable entities.
func (s *Service) GetProduct(ctx context.Context, idOrSlug string, lang *models.Language) (*models.Product, error) {
	q := s.DB.WithContext(ctx).Preload("Categories")
	if lang != nil {
		q = q.Preload("Translations", "language = ?", *lang)
	} else {
		q = q.Preload("Translations")
	}

	var product models.Product
	var err error
	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		err = q.Where("id = ?", id).First(&product).Error
	} else {
		err = q.Where("slug = ?", idOrSlug).First(&product).Error
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

type UpdateProductInput struct {
	Price        *int64
	ComparePrice *int64
	Stock        *int
	IsActive     *bool
	IsFeatured   *bool
	Images       datatypes.JSON
	// CategoryIDs, when non-nil, replaces the category link set.
	CategoryIDs []uuid.UUID
	// Translations, when non-nil, is the complete replacement set.
	Translations []TranslationInput
}

// UpdateProduct applies root updates, category link replacement, and
// translation replacement in one DB transaction.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, in UpdateProductInput) (*models.Product, error) {
	if in.Price != nil && *in.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if in.Stock != nil && *in.Stock < 0 {
		return nil, ErrInvalidStock
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
		var product models.Product
		if err := tx.Where("id = ?", id).First(&product).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrProductNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if in.Price != nil {
			updates["price"] = *in.Price
		}
		if in.ComparePrice != nil {
			updates["compare_price"] = *in.ComparePrice
		}
		if in.Stock != nil {
			updates["stock"] = *in.Stock
		}
		if in.IsActive != nil {
			updates["is_active"] = *in.IsActive
		}
		if in.IsFeatured != nil {
			updates["is_featured"] = *in.IsFeatured
		}
		if in.Images != nil {
			updates["images"] = in.Images
		}
		if len(updates) > 0 {
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return err
			}
		}

		if in.CategoryIDs != nil {
			var categories []models.Category
			if len(in.CategoryIDs) > 0 {
				if err := tx.Where("id IN ?", in.CategoryIDs).Find(&categories).Error; err != nil {
					return err
				}
				if len(categories) != len(in.CategoryIDs) {
					return ErrCategoryNotFound
				}
			}
			if err := tx.Model(&product).Association("Categories").Replace(categories); err != nil {
				return err
			}
		}

		if translations != nil {
			if err := tx.Where("product_id = ?", id).Delete(&models.ProductTranslation{}).Error; err != nil {
				return err
			}
			rows := make([]models.ProductTranslation, 0, len(translations))
			for _, tr := range translations {
				rows = append(rows, models.ProductTranslation{
					ProductID:   id,
					Language:    tr.Language,
					Name:        tr.Name,
					Description: tr.Description,
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
	return s.GetProduct(ctx, id.String(), nil)
}

// DeleteProduct removes a product, its translations, and its category links.
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Where("id = ?", id).First(&product).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrProductNotFound
			}
			return err
		}
		if err := tx.Model(&product).Association("Categories").Clear(); err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductTranslation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
}

// Filter is the typed list predicate for products.
type Filter struct {
	IsActive   *bool
	IsFeatured *bool
	CategoryID *uuid.UUID
	Language   *models.Language
	Page       int
	Limit      int
}

func (f Filter) apply(db, q *gorm.DB) *gorm.DB {
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	if f.IsFeatured != nil {
		q = q.Where("is_featured = ?", *f.IsFeatured)
	}
	if f.CategoryID != nil {
		sub := db.Table("ProductCategories").Select("product_id").Where("category_id = ?", *f.CategoryID)
		q = q.Where("id IN (?)", sub)
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

// ListProducts returns products matching the filter, newest first.
func (s *Service) ListProducts(ctx context.Context, f Filter) ([]models.Product, int64, error) {
	db := s.DB.WithContext(ctx)

	var total int64
	if err := f.apply(db, db.Model(&models.Product{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := f.apply(db, db)
	if f.Language != nil {
		q = q.Preload("Translations", "language = ?", *f.Language)
	} else {
		q = q.Preload("Translations")
	}

	offset, limit := f.page()
	var out []models.Product
	if err := q.Preload("Categories").Order("created_at DESC").Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
