package products

import "errors"

var (
	ErrProductNotFound  = errors.New("Product not found")
	ErrCategoryNotFound = errors.New("Category not found")
	ErrSlugTaken        = errors.New("A product with this slug already exists")
	ErrSlugRequired     = errors.New("Slug is required")
	ErrInvalidPrice     = errors.New("Price must be a positive integer")
	ErrInvalidStock     = errors.New("Stock must not be negative")
	ErrNoTranslations   = errors.New("At least one translation is required")
	ErrInvalidLanguage  = errors.New("Unsupported translation language")
	ErrNameRequired     = errors.New("Translation name is required")
)
