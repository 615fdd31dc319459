package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, tx *gorm.DB, ticket *EventTicket) error
	FindByID(ctx context.Context, id snowflake.ID) (*EventTicket, error)
	ListByUser(ctx context.Context, userID snowflake.ID) ([]EventTicket, error)
	UpdatePaymentStatus(ctx context.Context, id snowflake.ID, status string) error
}
