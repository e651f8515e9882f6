package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionStatus is the payment state of a donation's transaction.
// SUCCESS is terminal: the PENDING→SUCCESS flip happens at most once.
type TransactionStatus string

const (
	TransactionPending TransactionStatus = "PENDING"
	TransactionSuccess TransactionStatus = "SUCCESS"
	TransactionFailed  TransactionStatus = "FAILED"
)

// Transaction is the 1:1 payment record paired with a Donation.
// ExternalID is the reference handed to the payment provider
// (DON-<timestamp>-<8 hex chars>).
type Transaction struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	DonationID    uuid.UUID         `gorm:"column:donation_id;type:uuid;not null;uniqueIndex" json:"donation_id"`
	ExternalID    string            `gorm:"column:external_id;uniqueIndex;not null" json:"external_id"`
	Amount        int64             `gorm:"column:amount;not null" json:"amount"`
	Currency      string            `gorm:"column:currency;type:varchar(3);not null;default:'XOF'" json:"currency"`
	PaymentMethod string            `gorm:"column:payment_method;type:varchar(30);not null" json:"payment_method"`
	Status        TransactionStatus `gorm:"column:status;type:varchar(10);not null;default:'PENDING'" json:"status"`
	ProviderRef   *string           `gorm:"column:provider_ref" json:"provider_ref"`
	PaidAt        *time.Time        `gorm:"column:paid_at" json:"paid_at"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func (Transaction) TableName() string {
	return "Transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
