package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, org *Organization) error
	FindByID(ctx context.Context, id snowflake.ID) (*Organization, error)
	FindBySlug(ctx context.Context, slug string) (*Organization, error)
	List(ctx context.Context, filter ListFilter) ([]Organization, error)
	ListByMember(ctx context.Context, userID snowflake.ID) ([]Organization, error)
	UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error

	CreateMember(ctx context.Context, member *Member) error
	FindMember(ctx context.Context, orgID, userID snowflake.ID) (*Member, error)
	ListMembers(ctx context.Context, orgID snowflake.ID) ([]Member, error)
	UpdateMemberFields(ctx context.Context, id snowflake.ID, fields map[string]any) error
	DeleteMember(ctx context.Context, id snowflake.ID) error
}
