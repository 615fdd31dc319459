package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Event, error)
	Get(ctx context.Context, id snowflake.ID) (*Event, error)
	GetApproved(ctx context.Context, id snowflake.ID) (*Event, error)
	ListPublic(ctx context.Context, upcomingOnly bool) ([]Event, error)
	ListAll(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, req UpdateRequest) (*Event, error)
	Approve(ctx context.Context, id snowflake.ID) error
}

type CreateRequest struct {
	Name           string
	Description    string
	Date           time.Time
	Location       string
	TicketPrice    int64
	Type           string
	OrganizationID *snowflake.ID
	CreatedBy      snowflake.ID
}

type UpdateRequest struct {
	ID          snowflake.ID
	Name        *string
	Description *string
	Date        *time.Time
	Location    *string
	TicketPrice *int64
	Type        *string
}
