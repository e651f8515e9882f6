package donations

import "errors"

var (
	ErrInvalidAmount      = errors.New("Donation amount must be a positive integer")
	ErrAmbiguousTarget    = errors.New("Donation cannot target both a project and a campaign")
	ErrProjectNotFound    = errors.New("Project not found")
	ErrCampaignNotFound   = errors.New("Campaign not found")
	ErrDonationNotFound   = errors.New("Donation not found")
	ErrAlreadyConfirmed   = errors.New("Donation already confirmed")
	ErrPaymentMethodEmpty = errors.New("Payment method is required")
)
