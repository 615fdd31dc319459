package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Upsert(ctx context.Context, item *CartItem) (*CartItem, error)
	Find(ctx context.Context, userID, productID snowflake.ID) (*CartItem, error)
	ListLines(ctx context.Context, userID snowflake.ID) ([]Line, error)
	UpdateQuantity(ctx context.Context, id snowflake.ID, quantity int) error
	Delete(ctx context.Context, id snowflake.ID) error
	DeleteAll(ctx context.Context, tx *gorm.DB, userID snowflake.ID) error
}
