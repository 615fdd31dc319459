package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, tx *gorm.DB, order *Order, items []OrderItem) error
	FindByID(ctx context.Context, id snowflake.ID) (*Order, error)
	ListItems(ctx context.Context, orderID snowflake.ID) ([]OrderItem, error)
	ListByUser(ctx context.Context, userID snowflake.ID) ([]Order, error)
	// ListAll returns up to limit+1 orders newest first so the service
	// can tell whether another page exists. A nil cursor starts from the
	// top.
	ListAll(ctx context.Context, cursor *pagination.Cursor, limit int) ([]*Order, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id snowflake.ID, status string) error
}
