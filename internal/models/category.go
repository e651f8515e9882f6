package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups shop products; linked many-to-many via ProductCategories.
type Category struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Slug         string                `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	SortOrder    int                   `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	Translations []CategoryTranslation `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"translations"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt        `gorm:"index" json:"-"`
}

func (Category) TableName() string {
	return "Categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CategoryTranslation struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;not null;uniqueIndex:idx_category_lang" json:"category_id"`
	Language   Language  `gorm:"column:language;type:varchar(2);not null;uniqueIndex:idx_category_lang" json:"language"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (CategoryTranslation) TableName() string {
	return "CategoryTranslations"
}

func (t *CategoryTranslation) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
