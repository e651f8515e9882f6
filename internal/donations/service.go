package donations

import (
	"context"
	"fmt"
	"time"

	"espoir-backend/internal/models"
	"espoir-backend/internal/pkg/identifier"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
	// CheckoutBaseURL is the placeholder payment page; the real gateway
	// redirect will replace it once the provider integration lands.
	CheckoutBaseURL string
}

type CreateDonationInput struct {
	Amount        int64
	Currency      string
	Type          models.DonationType
	PaymentMethod string
	ProjectID     *uuid.UUID
	CampaignID    *uuid.UUID
	DonorName     *string
	DonorEmail    *string
	DonorPhone    *string
	Message       *string
	IsAnonymous   bool
}

// PaymentData is the checkout payload returned alongside a new donation.
// The provider is expected to call back with a reference once the payment
// settles out of band; ConfirmPayment is the only entry point for that.
type PaymentData struct {
	CheckoutURL string    `json:"checkout_url"`
	Reference   string    `json:"reference"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// CreateDonation validates the target, then creates the donation and its
// paired PENDING transaction in one nested write.
func (s *Service) CreateDonation(ctx context.Context, in CreateDonationInput) (*models.Donation, *PaymentData, error) {
	if in.Amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}
	if in.PaymentMethod == "" {
		return nil, nil, ErrPaymentMethodEmpty
	}
	if in.ProjectID != nil && in.CampaignID != nil {
		return nil, nil, ErrAmbiguousTarget
	}
	if in.Currency == "" {
		in.Currency = "XOF"
	}
	if in.Type == "" {
		in.Type = models.DonationOneTime
	}

	if in.ProjectID != nil {
		var count int64
		if err := s.DB.WithContext(ctx).Model(&models.Project{}).Where("id = ?", *in.ProjectID).Count(&count).Error; err != nil {
			return nil, nil, err
		}
		if count == 0 {
			return nil, nil, ErrProjectNotFound
		}
	}
	if in.CampaignID != nil {
		var count int64
		if err := s.DB.WithContext(ctx).Model(&models.Campaign{}).Where("id = ?", *in.CampaignID).Count(&count).Error; err != nil {
			return nil, nil, err
		}
		if count == 0 {
			return nil, nil, ErrCampaignNotFound
		}
	}

	externalID := identifier.NewDonationRef()
	donation := models.Donation{
		Amount:      in.Amount,
		Currency:    in.Currency,
		Type:        in.Type,
		ProjectID:   in.ProjectID,
		CampaignID:  in.CampaignID,
		DonorName:   in.DonorName,
		DonorEmail:  in.DonorEmail,
		DonorPhone:  in.DonorPhone,
		Message:     in.Message,
		IsAnonymous: in.IsAnonymous,
		Transaction: models.Transaction{
			ExternalID:    externalID,
			Amount:        in.Amount,
			Currency:      in.Currency,
			PaymentMethod: in.PaymentMethod,
			Status:        models.TransactionPending,
		},
	}

	if err := s.DB.WithContext(ctx).Create(&donation).Error; err != nil {
		return nil, nil, err
	}

	payment := &PaymentData{
		CheckoutURL: fmt.Sprintf("%s/%s", s.CheckoutBaseURL, externalID),
		Reference:   externalID,
		Amount:      donation.Amount,
		Currency:    donation.Currency,
		ExpiresAt:   time.Now().Add(30 * time.Minute),
	}
	return &donation, payment, nil
}

// ConfirmPayment flips the paired transaction PENDING→SUCCESS and applies the
// aggregate counters on the targeted project/campaign. The status flip and the
// counter increments are one DB transaction: a confirmation never partially
// applies. Counter mutation is an atomic SQL increment, not read-modify-write,
// so concurrent confirmations on the same target cannot lose updates.
func (s *Service) ConfirmPayment(ctx context.Context, donationID uuid.UUID, providerRef string) (*models.Donation, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var donation models.Donation
		if err := tx.Preload("Transaction").Where("id = ?", donationID).First(&donation).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrDonationNotFound
			}
			return err
		}
		if donation.Transaction.Status == models.TransactionSuccess {
			return ErrAlreadyConfirmed
		}

		now := time.Now()
		if err := tx.Model(&models.Transaction{}).Where("id = ?", donation.Transaction.ID).Updates(map[string]interface{}{
			"status":       models.TransactionSuccess,
			"provider_ref": providerRef,
			"paid_at":      now,
		}).Error; err != nil {
			return err
		}

		if donation.ProjectID != nil {
			if err := tx.Model(&models.Project{}).Where("id = ?", *donation.ProjectID).Updates(map[string]interface{}{
				"collected_amount": gorm.Expr("collected_amount + ?", donation.Amount),
				"donor_count":      gorm.Expr("donor_count + 1"),
			}).Error; err != nil {
				return err
			}
		}
		if donation.CampaignID != nil {
			if err := tx.Model(&models.Campaign{}).Where("id = ?", *donation.CampaignID).Updates(map[string]interface{}{
				"collected_amount": gorm.Expr("collected_amount + ?", donation.Amount),
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var donation models.Donation
	if err := s.DB.WithContext(ctx).Preload("Transaction").Where("id = ?", donationID).First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

// GetDonation returns a donation with its transaction.
func (s *Service) GetDonation(ctx context.Context, id uuid.UUID) (*models.Donation, error) {
	var donation models.Donation
	if err := s.DB.WithContext(ctx).Preload("Transaction").Where("id = ?", id).First(&donation).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}
	return &donation, nil
}

// Filter is the typed list predicate: every supported query parameter has a
// tagged optional field here, so adding a filter is a compile-visible change.
type Filter struct {
	ProjectID  *uuid.UUID
	CampaignID *uuid.UUID
	Status     *models.TransactionStatus
	Page       int
	Limit      int
}

func (f Filter) apply(db, q *gorm.DB) *gorm.DB {
	if f.ProjectID != nil {
		q = q.Where("project_id = ?", *f.ProjectID)
	}
	if f.CampaignID != nil {
		q = q.Where("campaign_id = ?", *f.CampaignID)
	}
	if f.Status != nil {
		sub := db.Model(&models.Transaction{}).Select("donation_id").Where("status = ?", *f.Status)
		q = q.Where("id IN (?)", sub)
	}
	return q
}

func (f Filter) page() (offset, limit int) {
	limit = f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit, limit
}

// ListDonations returns donations matching the filter, newest first, with the
// total match count for pagination metadata.
func (s *Service) ListDonations(ctx context.Context, f Filter) ([]models.Donation, int64, error) {
	db := s.DB.WithContext(ctx)

	var total int64
	if err := f.apply(db, db.Model(&models.Donation{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := f.page()
	var out []models.Donation
	if err := f.apply(db, db).Preload("Transaction").Order("created_at DESC").Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
