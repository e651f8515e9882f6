package content

import "errors"

var (
	ErrContentNotFound = errors.New("Content not found")
	ErrSlugTaken       = errors.New("Content with this slug already exists")
	ErrSlugRequired    = errors.New("Slug is required")
	ErrInvalidType     = errors.New("Unsupported content type")
	ErrNoTranslations  = errors.New("At least one translation is required")
	ErrInvalidLanguage = errors.New("Unsupported translation language")
	ErrTitleRequired   = errors.New("Translation title is required")
)
