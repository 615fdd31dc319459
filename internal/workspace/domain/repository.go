package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, tx *gorm.DB, workspace *Workspace) error
	FindByID(ctx context.Context, id snowflake.ID) (*Workspace, error)
	ListByOwner(ctx context.Context, ownerID snowflake.ID) ([]Workspace, error)
	UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error

	CreatePage(ctx context.Context, page *Page) error
	FindPage(ctx context.Context, id snowflake.ID) (*Page, error)
	ListPages(ctx context.Context, workspaceID snowflake.ID) ([]Page, error)
	UpdatePageFields(ctx context.Context, id snowflake.ID, fields map[string]any) error
	DeletePage(ctx context.Context, id snowflake.ID) error

	CreateTask(ctx context.Context, task *Task) error
	FindTask(ctx context.Context, id snowflake.ID) (*Task, error)
	ListTasks(ctx context.Context, workspaceID snowflake.ID) ([]Task, error)
	UpdateTaskFields(ctx context.Context, id snowflake.ID, fields map[string]any) error
	DeleteTask(ctx context.Context, id snowflake.ID) error

	CreateFile(ctx context.Context, file *File) error
	FindFile(ctx context.Context, id snowflake.ID) (*File, error)
	ListFiles(ctx context.Context, workspaceID snowflake.ID) ([]File, error)
	DeleteFile(ctx context.Context, id snowflake.ID) error
}
