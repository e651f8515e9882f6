package orders

import (
	"context"
	"time"

	"espoir-backend/internal/models"
	"espoir-backend/internal/pkg/identifier"
	"espoir-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Flat-rate shipping policy. Currently free; the value is the single place
// to change when a carrier integration arrives.
const shippingCost int64 = 0

type Service struct {
	DB *gorm.DB
}

type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

type CreateOrderInput struct {
	Items           []OrderItemInput
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   *string
	ShippingAddress datatypes.JSON
	Notes           *string
}

// CreateOrder resolves every product up front (a single missing product fails
// the whole order), snapshots unit prices, and persists the order with its
// items in one nested write. Totals are fixed at creation time: later product
// price changes never touch an existing order.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrNoItems
	}
	if in.CustomerName == "" {
		return nil, ErrNameRequired
	}
	if !validation.IsValidEmail(in.CustomerEmail) {
		return nil, ErrInvalidEmail
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	ids := make([]uuid.UUID, 0, len(in.Items))
	for _, item := range in.Items {
		ids = append(ids, item.ProductID)
	}
	var products []models.Product
	if err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	priceByID := make(map[uuid.UUID]int64, len(products))
	for _, p := range products {
		priceByID[p.ID] = p.Price
	}

	var subtotal int64
	items := make([]models.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		price, ok := priceByID[item.ProductID]
		if !ok {
			return nil, ErrProductNotFound
		}
		subtotal += price * int64(item.Quantity)
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: price,
		})
	}

	order := models.Order{
		OrderNumber:     identifier.NewOrderNumber(),
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		ShippingAddress: in.ShippingAddress,
		Subtotal:        subtotal,
		ShippingCost:    shippingCost,
		Total:           subtotal + shippingCost,
		Status:          models.OrderPending,
		Notes:           in.Notes,
		Items:           items,
	}
	if err := s.DB.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus sets the new status unconditionally and stamps the matching
// milestone timestamp the first time that status is reached. Repeated
// transitions to the same status never re-stamp.
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus models.OrderStatus) (*models.Order, error) {
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	var order models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").Where("id = ?", orderID).First(&order).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrOrderNotFound
			}
			return err
		}

		updates := map[string]interface{}{"status": newStatus}
		now := time.Now()
		switch newStatus {
		case models.OrderConfirmed:
			if order.PaidAt == nil {
				updates["paid_at"] = now
			}
		case models.OrderShipped:
			if order.ShippedAt == nil {
				updates["shipped_at"] = now
			}
		case models.OrderDelivered:
			if order.DeliveredAt == nil {
				updates["delivered_at"] = now
			}
		case models.OrderCancelled:
			if order.CancelledAt == nil {
				updates["cancelled_at"] = now
			}
		}
		return tx.Model(&order).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Preload("Items").Where("id = ?", orderID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder returns an order with its items, looked up by id or order number.
func (s *Service) GetOrder(ctx context.Context, idOrNumber string) (*models.Order, error) {
	q := s.DB.WithContext(ctx).Preload("Items")
	var order models.Order
	var err error
	if id, parseErr := uuid.Parse(idOrNumber); parseErr == nil {
		err = q.Where("id = ?", id).First(&order).Error
	} else {
		err = q.Where("order_number = ?", idOrNumber).First(&order).Error
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Filter is the typed list predicate for orders.
type Filter struct {
	Status        *models.OrderStatus
	CustomerEmail *string
	Page          int
	Limit         int
}

func (f Filter) apply(q *gorm.DB) *gorm.DB {
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.CustomerEmail != nil {
		q = q.Where("customer_email = ?", *f.CustomerEmail)
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

// ListOrders returns orders matching the filter, newest first.
func (s *Service) ListOrders(ctx context.Context, f Filter) ([]models.Order, int64, error) {
	var total int64
	if err := f.apply(s.DB.WithContext(ctx).Model(&models.Order{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := f.page()
	var out []models.Order
	if err := f.apply(s.DB.WithContext(ctx)).Preload("Items").Order("created_at DESC").Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
