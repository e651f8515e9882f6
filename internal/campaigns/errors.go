package campaigns

import "errors"

var (
	ErrCampaignNotFound = errors.New("Campaign not found")
	ErrSlugTaken        = errors.New("A campaign with this slug already exists")
	ErrSlugRequired     = errors.New("Slug is required")
	ErrNoTranslations   = errors.New("At least one translation is required")
	ErrInvalidLanguage  = errors.New("Unsupported translation language")
	ErrTitleRequired    = errors.New("Translation title is required")
	ErrInvalidWindow    = errors.New("Campaign end date must be after its start date")
	ErrProjectNotFound  = errors.New("Project not found")
)
