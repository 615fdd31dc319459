package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, purchase *ServicePurchase) error
	FindByID(ctx context.Context, id snowflake.ID) (*ServicePurchase, error)
	ListByUser(ctx context.Context, userID snowflake.ID) ([]ServicePurchase, error)
	UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error
}
