package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id snowflake.ID) (*Product, error)
	List(ctx context.Context, approvedOnly bool) ([]Product, error)
	UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error

	// DecrementStock atomically reduces stock by qty, failing with
	// ErrInsufficientStock when fewer than qty units remain. tx may be
	// the shared connection or an open transaction.
	DecrementStock(ctx context.Context, tx *gorm.DB, id snowflake.ID, qty int) error
	// RestoreStock adds qty units back, for cancellations.
	RestoreStock(ctx context.Context, tx *gorm.DB, id snowflake.ID, qty int) error
}
