package categories

import "errors"

var (
	ErrCategoryNotFound = errors.New("Category not found")
	ErrSlugTaken        = errors.New("A category with this slug already exists")
	ErrSlugRequired     = errors.New("Slug is required")
	ErrNoTranslations   = errors.New("At least one translation is required")
	ErrInvalidLanguage  = errors.New("Unsupported translation language")
	ErrNameRequired     = errors.New("Translation name is required")
)
