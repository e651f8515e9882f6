package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonationType distinguishes one-off gifts from recurring pledges.
type DonationType string

const (
	DonationOneTime DonationType = "ONE_TIME"
	DonationMonthly DonationType = "MONTHLY"
)

// Donation is a gift of money. It targets at most one of Project or Campaign
// (neither means the general fund) and owns exactly one Transaction created
// with it. Payment state lives on the Transaction, not here.
type Donation struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Amount      int64          `gorm:"column:amount;not null" json:"amount"`
	Currency    string         `gorm:"column:currency;type:varchar(3);not null;default:'XOF'" json:"currency"`
	Type        DonationType   `gorm:"column:type;type:varchar(10);not null;default:'ONE_TIME'" json:"type"`
	ProjectID   *uuid.UUID     `gorm:"column:project_id;type:uuid" json:"project_id"`
	CampaignID  *uuid.UUID     `gorm:"column:campaign_id;type:uuid" json:"campaign_id"`
	DonorName   *string        `gorm:"column:donor_name" json:"donor_name"`
	DonorEmail  *string        `gorm:"column:donor_email" json:"donor_email"`
	DonorPhone  *string        `gorm:"column:donor_phone" json:"donor_phone"`
	IsAnonymous bool           `gorm:"column:is_anonymous;not null;default:false" json:"is_anonymous"`
	Message     *string        `gorm:"column:message;type:text" json:"message"`
	Transaction Transaction    `gorm:"foreignKey:DonationID;constraint:OnDelete:CASCADE" json:"transaction"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Donation) TableName() string {
	return "Donations"
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
