package orders

import (
	"espoir-backend/internal/models"
	"espoir-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type Handlers struct {
	Service *Service
}

type orderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	Items           []orderItemRequest `json:"items"`
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email"`
	CustomerPhone   *string            `json:"customer_phone"`
	ShippingAddress datatypes.JSON     `json:"shipping_address"`
	Notes           *string            `json:"notes"`
}

// CreateOrder POST /api/v1/orders
func (h *Handlers) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	in := CreateOrderInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	}
	for _, item := range req.Items {
		id, err := uuid.Parse(item.ProductID)
		if err != nil {
			return response.Error(c, "Invalid UUID format for product_id", fiber.StatusBadRequest, nil)
		}
		in.Items = append(in.Items, OrderItemInput{ProductID: id, Quantity: item.Quantity})
	}

	order, err := h.Service.CreateOrder(c.Context(), in)
	if err != nil {
		switch err {
		case ErrNoItems, ErrInvalidQuantity, ErrNameRequired, ErrInvalidEmail:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrProductNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			log.Error().Err(err).Msg("create order failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Order created", fiber.Map{"order": order}, nil)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus PATCH /api/v1/orders/:id/status
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for order id", fiber.StatusBadRequest, nil)
	}
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	order, err := h.Service.UpdateStatus(c.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		switch err {
		case ErrInvalidStatus:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrOrderNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			log.Error().Err(err).Str("order_id", id.String()).Msg("update order status failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Order status updated", fiber.Map{"order": order}, nil)
}

// GetOrder GET /api/v1/orders/:idOrNumber — accepts a UUID or an order number.
func (h *Handlers) GetOrder(c *fiber.Ctx) error {
	order, err := h.Service.GetOrder(c.Context(), c.Params("idOrNumber"))
	if err != nil {
		if err == ErrOrderNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Order fetched", fiber.Map{"order": order}, nil)
}

// ListOrders GET /api/v1/orders
func (h *Handlers) ListOrders(c *fiber.Ctx) error {
	var f Filter
	if v := c.Query("status"); v != "" {
		status := models.OrderStatus(v)
		if !status.Valid() {
			return response.Error(c, ErrInvalidStatus.Error(), fiber.StatusBadRequest, nil)
		}
		f.Status = &status
	}
	if v := c.Query("customer_email"); v != "" {
		f.CustomerEmail = &v
	}
	f.Page = c.QueryInt("page", 1)
	f.Limit = c.QueryInt("limit", 20)

	out, total, err := h.Service.ListOrders(c.Context(), f)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Orders fetched", fiber.Map{"orders": out}, response.Pagination{
		Page:  f.Page,
		Limit: f.Limit,
		Total: total,
	})
}
