// Package domain contains core types for discount codes.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Discount types.
const (
	TypePercentage  = "PERCENTAGE"
	TypeFixedAmount = "FIXED_AMOUNT"
)

// ValidType reports whether discountType is a known discount type.
func ValidType(discountType string) bool {
	return discountType == TypePercentage || discountType == TypeFixedAmount
}

// DiscountCode is a redeemable code. UsedCount only moves through the
// guarded increment so it can never pass MaxUses.
type DiscountCode struct {
	ID         snowflake.ID `json:"id" gorm:"primaryKey"`
	Code       string       `json:"code" gorm:"type:text;not null;uniqueIndex:ux_discount_codes_code"`
	Type       string       `json:"type" gorm:"type:text;not null"`
	Value      int64        `json:"value" gorm:"not null"`
	MinAmount  int64        `json:"min_amount" gorm:"column:min_amount;not null;default:0"`
	MaxUses    int          `json:"max_uses" gorm:"column:max_uses;not null"`
	UsedCount  int          `json:"used_count" gorm:"column:used_count;not null;default:0"`
	ValidUntil time.Time    `json:"valid_until" gorm:"column:valid_until;not null"`
	CreatedAt  time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (DiscountCode) TableName() string { return "discount_codes" }

// Quote is the outcome of validating a code against a subtotal.
type Quote struct {
	Code           string `json:"code"`
	DiscountAmount int64  `json:"discount_amount"`
	TotalAfter     int64  `json:"total_after"`
}
