package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*DiscountCode, error)
	Get(ctx context.Context, code string) (*DiscountCode, error)
	List(ctx context.Context) ([]DiscountCode, error)
	// Preview validates the code against a subtotal without consuming a
	// use. The discount never exceeds the subtotal.
	Preview(ctx context.Context, code string, subtotal int64) (*Quote, error)
	// Redeem re-validates and consumes one use with a guarded increment.
	// It is meant to run inside the checkout transaction; tx may be nil
	// outside one.
	Redeem(ctx context.Context, tx *gorm.DB, code string, subtotal int64) (*Quote, error)
}

type CreateRequest struct {
	Code       string
	Type       string
	Value      int64
	MinAmount  int64
	MaxUses    int
	ValidUntil time.Time
}
