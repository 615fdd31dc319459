// Package domain contains core types for workspaces: the private area a
// buyer gets with a service purchase, or a shared organization space.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Workspace types.
const (
	TypeService      = "SERVICE"
	TypeOrganization = "ORGANIZATION"
)

// Task statuses.
const (
	TaskTodo       = "TODO"
	TaskInProgress = "IN_PROGRESS"
	TaskCompleted  = "COMPLETED"
)

// ValidTaskStatus reports whether status is a known task status.
func ValidTaskStatus(status string) bool {
	switch status {
	case TaskTodo, TaskInProgress, TaskCompleted:
		return true
	default:
		return false
	}
}

// taskTransitions: tasks move forward or back one step, and reopen from
// completed.
var taskTransitions = map[string][]string{
	TaskTodo:       {TaskInProgress},
	TaskInProgress: {TaskCompleted, TaskTodo},
	TaskCompleted:  {TaskInProgress},
}

// CanTransitionTask reports whether a task may move between statuses.
func CanTransitionTask(from, to string) bool {
	for _, next := range taskTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Workspace is a scoped container of pages, tasks and files. Only the
// owner and the assigned mentor may read or write inside it.
type Workspace struct {
	ID             snowflake.ID  `json:"id" gorm:"primaryKey"`
	Name           string        `json:"name" gorm:"type:text;not null"`
	Type           string        `json:"type" gorm:"type:text;not null"`
	OwnerID        snowflake.ID  `json:"owner_id" gorm:"column:owner_id;not null;index"`
	OrganizationID *snowflake.ID `json:"organization_id,omitempty" gorm:"column:organization_id"`
	MentorID       *snowflake.ID `json:"mentor_id,omitempty" gorm:"column:mentor_id"`
	CreatedAt      time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time     `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Workspace) TableName() string { return "workspaces" }

// Page is a block of content. Pages form a tree through ParentID.
type Page struct {
	ID          snowflake.ID  `json:"id" gorm:"primaryKey"`
	WorkspaceID snowflake.ID  `json:"workspace_id" gorm:"column:workspace_id;not null;index"`
	ParentID    *snowflake.ID `json:"parent_id,omitempty" gorm:"column:parent_id"`
	Title       string        `json:"title" gorm:"type:text;not null"`
	Content     string        `json:"content,omitempty" gorm:"type:text"`
	SortOrder   int           `json:"sort_order" gorm:"column:sort_order;not null;default:0"`
	CreatedAt   time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time     `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Page) TableName() string { return "workspace_pages" }

type Task struct {
	ID          snowflake.ID  `json:"id" gorm:"primaryKey"`
	WorkspaceID snowflake.ID  `json:"workspace_id" gorm:"column:workspace_id;not null;index"`
	Title       string        `json:"title" gorm:"type:text;not null"`
	Status      string        `json:"status" gorm:"type:text;not null;default:'TODO'"`
	AssigneeID  *snowflake.ID `json:"assignee_id,omitempty" gorm:"column:assignee_id"`
	DueDate     *time.Time    `json:"due_date,omitempty" gorm:"column:due_date"`
	CreatedAt   time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time     `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Task) TableName() string { return "workspace_tasks" }

type File struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	WorkspaceID snowflake.ID `json:"workspace_id" gorm:"column:workspace_id;not null;index"`
	Name        string       `json:"name" gorm:"type:text;not null"`
	Size        int64        `json:"size" gorm:"not null"`
	URL         string       `json:"url" gorm:"type:text;not null"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (File) TableName() string { return "workspace_files" }
