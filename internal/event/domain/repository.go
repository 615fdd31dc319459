package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type ListFilter struct {
	ApprovedOnly bool
	// After keeps only events dated at or after this instant.
	After *time.Time
}

type Repository interface {
	Create(ctx context.Context, event *Event) error
	FindByID(ctx context.Context, id snowflake.ID) (*Event, error)
	List(ctx context.Context, filter ListFilter) ([]Event, error)
	UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error
}
