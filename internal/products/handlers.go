package products

import (
	"espoir-backend/internal/models"
	"espoir-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type Handlers struct {
	Service *Service
}

type translationRequest struct {
	Language    string `json:"language"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toTranslationInputs(in []translationRequest) []TranslationInput {
	out := make([]TranslationInput, 0, len(in))
	for _, tr := range in {
		out = append(out, TranslationInput{
			Language:    models.Language(tr.Language),
			Name:        tr.Name,
			Description: tr.Description,
		})
	}
	return out
}

func parseCategoryIDs(raw []string) ([]uuid.UUID, error) {
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

type createProductRequest struct {
	Slug         string               `json:"slug"`
	Price        int64                `json:"price"`
	ComparePrice *int64               `json:"compare_price"`
	Stock        int                  `json:"stock"`
	IsActive     *bool                `json:"is_active"`
	IsFeatured   bool                 `json:"is_featured"`
	Images       datatypes.JSON       `json:"images"`
	CategoryIDs  []string             `json:"category_ids"`
	Translations []translationRequest `json:"translations"`
}

// CreateProduct POST /api/v1/products
func (h *Handlers) CreateProduct(c *fiber.Ctx) error {
	var req createProductRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	categoryIDs, err := parseCategoryIDs(req.CategoryIDs)
	if err != nil {
		return response.Error(c, "Invalid UUID format for category_ids", fiber.StatusBadRequest, nil)
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product, err := h.Service.CreateProduct(c.Context(), CreateProductInput{
		Slug:         req.Slug,
		Price:        req.Price,
		ComparePrice: req.ComparePrice,
		Stock:        req.Stock,
		IsActive:     isActive,
		IsFeatured:   req.IsFeatured,
		Images:       req.Images,
		CategoryIDs:  categoryIDs,
		Translations: toTranslationInputs(req.Translations),
	})
	if err != nil {
		switch err {
		case ErrSlugRequired, ErrInvalidPrice, ErrInvalidStock, ErrNoTranslations, ErrInvalidLanguage, ErrNameRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrSlugTaken:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		case ErrCategoryNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			log.Error().Err(err).Msg("create product failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Product created", fiber.Map{"product": product}, nil)
}

// GetProduct GET /api/v1/products/:idOrSlug?language=FR
func (h *Handlers) GetProduct(c *fiber.Ctx) error {
	lang, ok := languageQuery(c)
	if !ok {
		return response.Error(c, "Unsupported language", fiber.StatusBadRequest, nil)
	}
	product, err := h.Service.GetProduct(c.Context(), c.Params("idOrSlug"), lang)
	if err != nil {
		if err == ErrProductNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Product fetched", fiber.Map{"product": product}, nil)
}

type updateProductRequest struct {
	Price        *int64               `json:"price"`
	ComparePrice *int64               `json:"compare_price"`
	Stock        *int                 `json:"stock"`
	IsActive     *bool                `json:"is_active"`
	IsFeatured   *bool                `json:"is_featured"`
	Images       datatypes.JSON       `json:"images"`
	CategoryIDs  []string             `json:"category_ids"`
	Translations []translationRequest `json:"translations"`
}

// UpdateProduct PUT /api/v1/products/:id
func (h *Handlers) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for product id", fiber.StatusBadRequest, nil)
	}
	var req updateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	in := UpdateProductInput{
		Price:        req.Price,
		ComparePrice: req.ComparePrice,
		Stock:        req.Stock,
		IsActive:     req.IsActive,
		IsFeatured:   req.IsFeatured,
		Images:       req.Images,
	}
	if req.CategoryIDs != nil {
		categoryIDs, err := parseCategoryIDs(req.CategoryIDs)
		if err != nil {
			return response.Error(c, "Invalid UUID format for category_ids", fiber.StatusBadRequest, nil)
		}
		in.CategoryIDs = categoryIDs
	}
	if req.Translations != nil {
		in.Translations = toTranslationInputs(req.Translations)
	}

	product, err := h.Service.UpdateProduct(c.Context(), id, in)
	if err != nil {
		switch err {
		case ErrInvalidPrice, ErrInvalidStock, ErrNoTranslations, ErrInvalidLanguage, ErrNameRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrProductNotFound, ErrCategoryNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			log.Error().Err(err).Str("product_id", id.String()).Msg("update product failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Product updated", fiber.Map{"product": product}, nil)
}

// DeleteProduct DELETE /api/v1/products/:id
func (h *Handlers) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for product id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteProduct(c.Context(), id); err != nil {
		if err == ErrProductNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Product deleted", nil, nil)
}

// ListProducts GET /api/v1/products
func (h *Handlers) ListProducts(c *fiber.Ctx) error {
	var f Filter
	if v := c.Query("active"); v != "" {
		active := v == "true"
		f.IsActive = &active
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true"
		f.IsFeatured = &featured
	}
	if v := c.Query("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return response.Error(c, "Invalid UUID format for category_id", fiber.StatusBadRequest, nil)
		}
		f.CategoryID = &id
	}
	lang, ok := languageQuery(c)
	if !ok {
		return response.Error(c, "Unsupported language", fiber.StatusBadRequest, nil)
	}
	f.Language = lang
	f.Page = c.QueryInt("page", 1)
	f.Limit = c.QueryInt("limit", 20)

	out, total, err := h.Service.ListProducts(c.Context(), f)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Products fetched", fiber.Map{"products": out}, response.Pagination{
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
