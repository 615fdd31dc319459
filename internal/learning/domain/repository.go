package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Find(ctx context.Context, userID, offeringID snowflake.ID) (*Progress, error)
	Create(ctx context.Context, progress *Progress) error
	UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error
	ListByUser(ctx context.Context, userID snowflake.ID) ([]Progress, error)
}
