package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Upsert records progress for an offering, clamped to 0..100, and
	// bumps last_accessed_at.
	Upsert(ctx context.Context, req UpsertRequest) (*Progress, error)
	ListMine(ctx context.Context, userID snowflake.ID) ([]Progress, error)
	// Summarize averages completion across the user's rows, rounded to
	// the nearest integer; an empty set averages to 0.
	Summarize(ctx context.Context, userID snowflake.ID) (*Summary, error)
}

type UpsertRequest struct {
	UserID            snowflake.ID
	OfferingID        snowflake.ID
	CompletionPercent int
	Materials         []string
}
