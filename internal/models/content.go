package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentType tags editorial content blocks.
type ContentType string

const (
	ContentPage ContentType = "PAGE"
	ContentNews ContentType = "NEWS"
	ContentFAQ  ContentType = "FAQ"
)

// Content is an editorial entry (static page, news article, FAQ item) with
// per-language translations.
type Content struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Slug         string               `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Type         ContentType          `gorm:"column:type;type:varchar(10);not null;default:'PAGE'" json:"type"`
	IsPublished  bool                 `gorm:"column:is_published;not null;default:false" json:"is_published"`
	PublishedAt  *time.Time           `gorm:"column:published_at" json:"published_at"`
	CoverImage   *string              `gorm:"column:cover_image" json:"cover_image"`
	Translations []ContentTranslation `gorm:"foreignKey:ContentID;constraint:OnDelete:CASCADE" json:"translations"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt       `gorm:"index" json:"-"`
}

func (Content) TableName() string {
	return "Contents"
}

func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type ContentTranslation struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ContentID uuid.UUID `gorm:"column:content_id;type:uuid;not null;uniqueIndex:idx_content_lang" json:"content_id"`
	Language  Language  `gorm:"column:language;type:varchar(2);not null;uniqueIndex:idx_content_lang" json:"language"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	Body      string    `gorm:"column:body;type:text" json:"body"`
	Excerpt   string    `gorm:"column:excerpt" json:"excerpt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ContentTranslation) TableName() string {
	return "ContentTranslations"
}

func (t *ContentTranslation) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
