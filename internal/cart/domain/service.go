package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Add upserts a product line. Unapproved or missing products are
	// rejected.
	Add(ctx context.Context, userID, productID snowflake.ID, quantity int) (*CartItem, error)
	UpdateQuantity(ctx context.Context, userID, productID snowflake.ID, quantity int) (*CartItem, error)
	Remove(ctx context.Context, userID, productID snowflake.ID) error
	List(ctx context.Context, userID snowflake.ID) ([]Line, error)
	Clear(ctx context.Context, userID snowflake.ID) error
}
