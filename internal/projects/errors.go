package projects

import "errors"

var (
	ErrProjectNotFound   = errors.New("Project not found")
	ErrSlugTaken         = errors.New("A project with this slug already exists")
	ErrSlugRequired      = errors.New("Slug is required")
	ErrNoTranslations    = errors.New("At least one translation is required")
	ErrInvalidLanguage   = errors.New("Unsupported translation language")
	ErrInvalidStatus     = errors.New("Unknown project status")
	ErrTitleRequired     = errors.New("Translation title is required")
	ErrInvalidGoalAmount = errors.New("Goal amount must not be negative")
)
