package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product is a shop item. Prices are XOF integers; ComparePrice, when set,
// is the pre-discount price shown struck through. Stock is informational and
// not decremented on order creation.
type Product struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Slug         string               `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Price        int64                `gorm:"column:price;not null" json:"price"`
	ComparePrice *int64               `gorm:"column:compare_price" json:"compare_price"`
	Stock        int                  `gorm:"column:stock;not null;default:0" json:"stock"`
	IsActive     bool                 `gorm:"column:is_active;not null;default:true" json:"is_active"`
	IsFeatured   bool                 `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	Images       datatypes.JSON       `gorm:"column:images;type:jsonb" json:"images"`
	Categories   []Category           `gorm:"many2many:ProductCategories" json:"categories,omitempty"`
	Translations []ProductTranslation `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"translations"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt       `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "Products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProductTranslation holds the localized name and description of a Product.
type ProductTranslation struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_product_lang" json:"product_id"`
	Language    Language  `gorm:"column:language;type:varchar(2);not null;uniqueIndex:idx_product_lang" json:"language"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (ProductTranslation) TableName() string {
	return "ProductTranslations"
}

func (t *ProductTranslation) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
