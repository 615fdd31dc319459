// Package domain contains core types for orders.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Order types.
const (
	TypeTicket      = "TICKET"
	TypeMerchandise = "MERCHANDISE"
)

// Order statuses.
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusShipped    = "SHIPPED"
	StatusDelivered  = "DELIVERED"
	StatusCancelled  = "CANCELLED"
	StatusRefunded   = "REFUNDED"
)

// transitions is the order lifecycle. Cancellation is only reachable
// before shipment; refunds only after delivery.
var transitions = map[string][]string{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {StatusRefunded},
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether status is a known order status.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

// Order is a checkout result. Monetary fields are immutable after
// creation; only Status moves.
type Order struct {
	ID              snowflake.ID `json:"id" gorm:"primaryKey"`
	UserID          snowflake.ID `json:"user_id" gorm:"column:user_id;not null;index"`
	Type            string       `json:"type" gorm:"type:text;not null"`
	Status          string       `json:"status" gorm:"type:text;not null;default:'PENDING'"`
	Subtotal        int64        `json:"subtotal" gorm:"not null"`
	DiscountCode    string       `json:"discount_code,omitempty" gorm:"column:discount_code;type:text"`
	DiscountAmount  int64        `json:"discount_amount" gorm:"column:discount_amount;not null;default:0"`
	ShippingFee     int64        `json:"shipping_fee" gorm:"column:shipping_fee;not null;default:0"`
	Total           int64        `json:"total" gorm:"not null"`
	ShippingAddress string       `json:"shipping_address,omitempty" gorm:"column:shipping_address;type:text"`
	CreatedAt       time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Order) TableName() string { return "orders" }

// OrderItem snapshots one purchased line. UnitPrice is the catalog
// price at checkout time and is never recomputed.
type OrderItem struct {
	ID        snowflake.ID  `json:"id" gorm:"primaryKey"`
	OrderID   snowflake.ID  `json:"order_id" gorm:"column:order_id;not null;index"`
	ProductID *snowflake.ID `json:"product_id,omitempty" gorm:"column:product_id"`
	Name      string        `json:"name" gorm:"type:text;not null"`
	Quantity  int           `json:"quantity" gorm:"not null"`
	UnitPrice int64         `json:"unit_price" gorm:"column:unit_price;not null"`
	CreatedAt time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (OrderItem) TableName() string { return "order_items" }

// OrderWithItems is an order joined with its line items.
type OrderWithItems struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}
