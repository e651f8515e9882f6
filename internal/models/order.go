package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderStatus is the shop order lifecycle state. Transitions are not
// validated at write time; milestone timestamps are stamped the first
// time the matching status is reached.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
	OrderRefunded   OrderStatus = "REFUNDED"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped,
		OrderDelivered, OrderCancelled, OrderRefunded:
		return true
	}
	return false
}

// Order is a shop order. Subtotal/Total are computed once at creation from
// the item price snapshots and never recomputed.
type Order struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderNumber     string         `gorm:"column:order_number;uniqueIndex;not null" json:"order_number"`
	CustomerName    string         `gorm:"column:customer_name;not null" json:"customer_name"`
	CustomerEmail   string         `gorm:"column:customer_email;not null" json:"customer_email"`
	CustomerPhone   *string        `gorm:"column:customer_phone" json:"customer_phone"`
	ShippingAddress datatypes.JSON `gorm:"column:shipping_address;type:jsonb" json:"shipping_address"`
	Subtotal        int64          `gorm:"column:subtotal;not null" json:"subtotal"`
	ShippingCost    int64          `gorm:"column:shipping_cost;not null;default:0" json:"shipping_cost"`
	Total           int64          `gorm:"column:total;not null" json:"total"`
	Status          OrderStatus    `gorm:"column:status;type:varchar(15);not null;default:'PENDING'" json:"status"`
	PaidAt          *time.Time     `gorm:"column:paid_at" json:"paid_at"`
	ShippedAt       *time.Time     `gorm:"column:shipped_at" json:"shipped_at"`
	DeliveredAt     *time.Time     `gorm:"column:delivered_at" json:"delivered_at"`
	CancelledAt     *time.Time     `gorm:"column:cancelled_at" json:"cancelled_at"`
	Notes           *string        `gorm:"column:notes;type:text" json:"notes"`
	Items           []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Order) TableName() string {
	return "Orders"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is one line of an Order. UnitPrice is the product price snapshot
// captured at order creation, immune to later price changes.
type OrderItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;not null" json:"order_id"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Quantity  int       `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice int64     `gorm:"column:unit_price;not null" json:"unit_price"`
	CreatedAt time.Time `json:"createdAt"`
}

func (OrderItem) TableName() string {
	return "OrderItems"
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
