package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, code *DiscountCode) error
	FindByCode(ctx context.Context, code string) (*DiscountCode, error)
	List(ctx context.Context) ([]DiscountCode, error)

	// ConsumeUse atomically increments used_count while it is still
	// below max_uses and the code has not expired. It returns
	// ErrRedeemConflict when the guard matches no row.
	ConsumeUse(ctx context.Context, tx *gorm.DB, code string) error
}
