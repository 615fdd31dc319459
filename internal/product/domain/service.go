package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Product, error)
	Get(ctx context.Context, id snowflake.ID) (*Product, error)
	GetApproved(ctx context.Context, id snowflake.ID) (*Product, error)
	ListPublic(ctx context.Context) ([]Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, req UpdateRequest) (*Product, error)
	Approve(ctx context.Context, id snowflake.ID) error
	// AdjustStock adds delta to stock. A negative delta that would take
	// stock below zero fails with ErrInsufficientStock.
	AdjustStock(ctx context.Context, id snowflake.ID, delta int) (*Product, error)
}

type CreateRequest struct {
	Name           string
	Description    string
	Price          int64
	Images         []string
	Stock          int
	Category       string
	OrganizationID *snowflake.ID
	CreatedBy      snowflake.ID
}

type UpdateRequest struct {
	ID          snowflake.ID
	Name        *string
	Description *string
	Price       *int64
	Images      []string
	Category    *string
}
