package donations

import (
	"espoir-backend/internal/models"
	"espoir-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *Service
}

type createDonationRequest struct {
	Amount        int64   `json:"amount"`
	Currency      string  `json:"currency"`
	Type          string  `json:"type"`
	PaymentMethod string  `json:"payment_method"`
	ProjectID     *string `json:"project_id"`
	CampaignID    *string `json:"campaign_id"`
	DonorName     *string `json:"donor_name"`
	DonorEmail    *string `json:"donor_email"`
	DonorPhone    *string `json:"donor_phone"`
	Message       *string `json:"message"`
	IsAnonymous   bool    `json:"is_anonymous"`
}

// CreateDonation POST /api/v1/donations
func (h *Handlers) CreateDonation(c *fiber.Ctx) error {
	var req createDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	in := CreateDonationInput{
		Amount:        req.Amount,
		Currency:      req.Currency,
		Type:          models.DonationType(req.Type),
		PaymentMethod: req.PaymentMethod,
		DonorName:     req.DonorName,
		DonorEmail:    req.DonorEmail,
		DonorPhone:    req.DonorPhone,
		Message:       req.Message,
		IsAnonymous:   req.IsAnonymous,
	}
	if req.ProjectID != nil && *req.ProjectID != "" {
		id, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			return response.Error(c, "Invalid UUID format for project_id", fiber.StatusBadRequest, nil)
		}
		in.ProjectID = &id
	}
	if req.CampaignID != nil && *req.CampaignID != "" {
		id, err := uuid.Parse(*req.CampaignID)
		if err != nil {
			return response.Error(c, "Invalid UUID format for campaign_id", fiber.StatusBadRequest, nil)
		}
		in.CampaignID = &id
	}

	donation, payment, err := h.Service.CreateDonation(c.Context(), in)
	if err != nil {
		switch err {
		case ErrInvalidAmount, ErrAmbiguousTarget, ErrPaymentMethodEmpty:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrProjectNotFound, ErrCampaignNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			log.Error().Err(err).Msg("create donation failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	return response.SuccessCreated(c, "Donation created", fiber.Map{
		"donation": donation,
		"payment":  payment,
	}, nil)
}

type confirmPaymentRequest struct {
	ProviderRef string `json:"provider_ref"`
}

// ConfirmPayment POST /api/v1/donations/:id/confirm — called once the payment
// provider reports success for the donation's reference.
func (h *Handlers) ConfirmPayment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for donation id", fiber.StatusBadRequest, nil)
	}
	var req confirmPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if req.ProviderRef == "" {
		return response.Error(c, "provider_ref is required", fiber.StatusBadRequest, nil)
	}

	donation, err := h.Service.ConfirmPayment(c.Context(), id, req.ProviderRef)
	if err != nil {
		switch err {
		case ErrDonationNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case ErrAlreadyConfirmed:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			log.Error().Err(err).Str("donation_id", id.String()).Msg("confirm payment failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Payment confirmed", fiber.Map{"donation": donation}, nil)
}

// GetDonation GET /api/v1/donations/:id
func (h *Handlers) GetDonation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for donation id", fiber.StatusBadRequest, nil)
	}
	donation, err := h.Service.GetDonation(c.Context(), id)
	if err != nil {
		if err == ErrDonationNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Donation fetched", fiber.Map{"donation": donation}, nil)
}

// ListDonations GET /api/v1/donations
func (h *Handlers) ListDonations(c *fiber.Ctx) error {
	var f Filter
	if v := c.Query("project_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return response.Error(c, "Invalid UUID format for project_id", fiber.StatusBadRequest, nil)
		}
		f.ProjectID = &id
	}
	if v := c.Query("campaign_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return response.Error(c, "Invalid UUID format for campaign_id", fiber.StatusBadRequest, nil)
		}
		f.CampaignID = &id
	}
	if v := c.Query("status"); v != "" {
		status := models.TransactionStatus(v)
		f.Status = &status
	}
	f.Page = c.QueryInt("page", 1)
	f.Limit = c.QueryInt("limit", 20)

	out, total, err := h.Service.ListDonations(c.Context(), f)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Donations fetched", fiber.Map{"donations": out}, response.Pagination{
		Page:  f.Page,
		Limit: f.Limit,
		Total: total,
	})
}
