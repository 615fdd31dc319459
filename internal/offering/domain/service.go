package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Offering, error)
	Get(ctx context.Context, id snowflake.ID) (*Offering, error)
	// GetApproved is Get restricted to the public catalog.
	GetApproved(ctx context.Context, id snowflake.ID) (*Offering, error)
	ListPublic(ctx context.Context) ([]Offering, error)
	ListAll(ctx context.Context) ([]Offering, error)
	Update(ctx context.Context, req UpdateRequest) (*Offering, error)
	Approve(ctx context.Context, id snowflake.ID) error
}

type CreateRequest struct {
	Name           string
	Description    string
	Price          int64
	Category       string
	Features       []string
	OrganizationID *snowflake.ID
	CreatedBy      snowflake.ID
}

type UpdateRequest struct {
	ID          snowflake.ID
	Name        *string
	Description *string
	Price       *int64
	Category    *string
	Features    []string
}
