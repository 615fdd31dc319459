package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Organization, error)
	Get(ctx context.Context, id snowflake.ID) (*Organization, error)
	GetBySlug(ctx context.Context, slug string) (*Organization, error)
	List(ctx context.Context, filter ListFilter) ([]Organization, error)
	ListMine(ctx context.Context, userID snowflake.ID) ([]Organization, error)
	Update(ctx context.Context, req UpdateRequest) (*Organization, error)

	// Admin operations.
	Approve(ctx context.Context, id snowflake.ID) error
	SetTier(ctx context.Context, id snowflake.ID, tier string) error

	// Membership.
	Join(ctx context.Context, orgID, userID snowflake.ID) (*Member, error)
	// IsApprovedMember reports whether the user holds an approved
	// membership in the organization.
	IsApprovedMember(ctx context.Context, orgID, userID snowflake.ID) (bool, error)
	ApproveMember(ctx context.Context, actorID, orgID, userID snowflake.ID) error
	RemoveMember(ctx context.Context, actorID, orgID, userID snowflake.ID) error
	ListMembers(ctx context.Context, orgID snowflake.ID) ([]Member, error)

	// CommissionPercent resolves the platform commission for the
	// organization from its tier.
	CommissionPercent(ctx context.Context, id snowflake.ID) (float64, error)
}

type CreateRequest struct {
	Name        string
	Description string
	LogoURL     string
	Website     string
	OwnerID     snowflake.ID
}

type UpdateRequest struct {
	ID          snowflake.ID
	ActorID     snowflake.ID
	Name        *string
	Description *string
	LogoURL     *string
	Website     *string
}

type ListFilter struct {
	// ApprovedOnly hides pending organizations, the default for the
	// public catalog.
	ApprovedOnly bool
	Tier         string
}
