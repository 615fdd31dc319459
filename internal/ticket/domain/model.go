// Package domain contains core types for event tickets.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Ticket payment statuses. Confirmation arrives through the payment
// webhook; tickets never become paid any other way.
const (
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentCancelled = "cancelled"
)

// EventTicket links a user to an event. QRCode is a uuid shown at the
// door; it is generated at purchase and never changes.
type EventTicket struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	EventID       snowflake.ID `json:"event_id" gorm:"column:event_id;not null;index"`
	UserID        snowflake.ID `json:"user_id" gorm:"column:user_id;not null;index"`
	OrderID       snowflake.ID `json:"order_id" gorm:"column:order_id;not null"`
	QRCode        string       `json:"qr_code" gorm:"column:qr_code;type:text;not null;uniqueIndex:ux_event_tickets_qr"`
	PaymentStatus string       `json:"payment_status" gorm:"column:payment_status;type:text;not null;default:'pending'"`
	CreatedAt     time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (EventTicket) TableName() string { return "event_tickets" }
