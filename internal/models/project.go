package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectStatus is the lifecycle state of a fundraising project.
type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "DRAFT"
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectPaused    ProjectStatus = "PAUSED"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectCancelled ProjectStatus = "CANCELLED"
)

// Project is a fundraising project. Localized text lives in Translations;
// collected_amount and donor_count are maintained incrementally on payment
// confirmation, never recomputed on read.
type Project struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Slug            string               `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Status          ProjectStatus        `gorm:"column:status;type:varchar(20);not null;default:'DRAFT'" json:"status"`
	GoalAmount      int64                `gorm:"column:goal_amount;not null;default:0" json:"goal_amount"`
	CollectedAmount int64                `gorm:"column:collected_amount;not null;default:0" json:"collected_amount"`
	DonorCount      int                  `gorm:"column:donor_count;not null;default:0" json:"donor_count"`
	IsUrgent        bool                 `gorm:"column:is_urgent;not null;default:false" json:"is_urgent"`
	IsFeatured      bool                 `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	CoverImage      *string              `gorm:"column:cover_image" json:"cover_image"`
	Translations    []ProjectTranslation `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"translations"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt       `gorm:"index" json:"-"`
}

func (Project) TableName() string {
	return "Projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProjectTranslation holds the localized text of a Project for one language.
type ProjectTranslation struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProjectID   uuid.UUID `gorm:"column:project_id;type:uuid;not null;uniqueIndex:idx_project_lang" json:"project_id"`
	Language    Language  `gorm:"column:language;type:varchar(2);not null;uniqueIndex:idx_project_lang" json:"language"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Excerpt     string    `gorm:"column:excerpt" json:"excerpt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (ProjectTranslation) TableName() string {
	return "ProjectTranslations"
}

func (t *ProjectTranslation) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
