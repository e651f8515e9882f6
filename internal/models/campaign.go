package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Campaign is a time-bounded fundraising drive that can span several projects.
// It keeps its own collected_amount counter; donor counts are tracked on the
// project level only.
type Campaign struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Slug            string                `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Status          ProjectStatus         `gorm:"column:status;type:varchar(20);not null;default:'DRAFT'" json:"status"`
	GoalAmount      int64                 `gorm:"column:goal_amount;not null;default:0" json:"goal_amount"`
	CollectedAmount int64                 `gorm:"column:collected_amount;not null;default:0" json:"collected_amount"`
	IsUrgent        bool                  `gorm:"column:is_urgent;not null;default:false" json:"is_urgent"`
	IsFeatured      bool                  `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	CoverImage      *string               `gorm:"column:cover_image" json:"cover_image"`
	StartDate       time.Time             `gorm:"column:start_date;not null" json:"start_date"`
	EndDate         time.Time             `gorm:"column:end_date;not null" json:"end_date"`
	Projects        []Project             `gorm:"many2many:CampaignProjects" json:"projects,omitempty"`
	Translations    []CampaignTranslation `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE" json:"translations"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt        `gorm:"index" json:"-"`
}

func (Campaign) TableName() string {
	return "Campaigns"
}

func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CampaignTranslation holds the localized text of a Campaign for one language.
type CampaignTranslation struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CampaignID  uuid.UUID `gorm:"column:campaign_id;type:uuid;not null;uniqueIndex:idx_campaign_lang" json:"campaign_id"`
	Language    Language  `gorm:"column:language;type:varchar(2);not null;uniqueIndex:idx_campaign_lang" json:"language"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Excerpt     string    `gorm:"column:excerpt" json:"excerpt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (CampaignTranslation) TableName() string {
	return "CampaignTranslations"
}

func (t *CampaignTranslation) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
