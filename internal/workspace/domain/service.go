package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Provision creates a workspace. Service purchases call this with
	// TypeService; organization spaces use TypeOrganization.
	Provision(ctx context.Context, req ProvisionRequest) (*Workspace, error)
	Get(ctx context.Context, actorID, workspaceID snowflake.ID) (*Workspace, error)
	ListMine(ctx context.Context, actorID snowflake.ID) ([]Workspace, error)
	AssignMentor(ctx context.Context, workspaceID, mentorID snowflake.ID) error

	CreatePage(ctx context.Context, actorID snowflake.ID, req PageRequest) (*Page, error)
	ListPages(ctx context.Context, actorID, workspaceID snowflake.ID) ([]Page, error)
	UpdatePage(ctx context.Context, actorID snowflake.ID, req PageUpdate) (*Page, error)
	DeletePage(ctx context.Context, actorID, workspaceID, pageID snowflake.ID) error

	CreateTask(ctx context.Context, actorID snowflake.ID, req TaskRequest) (*Task, error)
	ListTasks(ctx context.Context, actorID, workspaceID snowflake.ID) ([]Task, error)
	MoveTask(ctx context.Context, actorID, workspaceID, taskID snowflake.ID, status string) (*Task, error)
	DeleteTask(ctx context.Context, actorID, workspaceID, taskID snowflake.ID) error

	AddFile(ctx context.Context, actorID snowflake.ID, req FileRequest) (*File, error)
	ListFiles(ctx context.Context, actorID, workspaceID snowflake.ID) ([]File, error)
	RemoveFile(ctx context.Context, actorID, workspaceID, fileID snowflake.ID) error
}

type ProvisionRequest struct {
	Name           string
	Type           string
	OwnerID        snowflake.ID
	OrganizationID *snowflake.ID
}

type PageRequest struct {
	WorkspaceID snowflake.ID
	ParentID    *snowflake.ID
	Title       string
	Content     string
	SortOrder   int
}

type PageUpdate struct {
	WorkspaceID snowflake.ID
	PageID      snowflake.ID
	Title       *string
	Content     *string
	SortOrder   *int
}

type TaskRequest struct {
	WorkspaceID snowflake.ID
	Title       string
	AssigneeID  *snowflake.ID
	DueDate     *time.Time
}

type FileRequest struct {
	WorkspaceID snowflake.ID
	Name        string
	Size        int64
	URL         string
}
