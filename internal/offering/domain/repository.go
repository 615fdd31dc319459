package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, offering *Offering) error
	FindByID(ctx context.Context, id snowflake.ID) (*Offering, error)
	List(ctx context.Context, approvedOnly bool) ([]Offering, error)
	UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error
}
