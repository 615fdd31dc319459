package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/workspace/domain"
	"github.com/tedxmekong/stagehub/internal/workspace/repository"
	"github.com/tedxmekong/stagehub/pkg/db"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.Workspace{}, &domain.Page{}, &domain.Task{}, &domain.File{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return New(zap.NewNop(), repository.New(conn), node)
}

func TestAccessControl(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := snowflake.ID(1)
	mentor := snowflake.ID(2)
	stranger := snowflake.ID(3)

	ws, err := svc.Provision(ctx, domain.ProvisionRequest{Name: "Coaching Space", Type: domain.TypeService, OwnerID: owner})
	if err != nil {
		t.Fatalf("provision: %v", err)
	}

	if _, err := svc.Get(ctx, stranger, ws.ID); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("stranger should be denied, got %v", err)
	}
	if _, err := svc.Get(ctx, mentor, ws.ID); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("unassigned mentor should be denied, got %v", err)
	}

	if err := svc.AssignMentor(ctx, ws.ID, mentor); err != nil {
		t.Fatalf("assign mentor: %v", err)
	}
	if _, err := svc.Get(ctx, mentor, ws.ID); err != nil {
		t.Fatalf("assigned mentor should have access, got %v", err)
	}
}

func TestPageTree(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := snowflake.ID(1)

	ws, err := svc.Provision(ctx, domain.ProvisionRequest{Name: "Space", Type: domain.TypeService, OwnerID: owner})
	if err != nil {
		t.Fatalf("provision: %v", err)
	}

	root, err := svc.CreatePage(ctx, owner, domain.PageRequest{WorkspaceID: ws.ID, Title: "Plan"})
	if err != nil {
		t.Fatalf("create root page: %v", err)
	}
	child, err := svc.CreatePage(ctx, owner, domain.PageRequest{WorkspaceID: ws.ID, ParentID: &root.ID, Title: "Week 1"})
	if err != nil {
		t.Fatalf("create child page: %v", err)
	}
	grandchild, err := svc.CreatePage(ctx, owner, domain.PageRequest{WorkspaceID: ws.ID, ParentID: &child.ID, Title: "Day 1"})
	if err != nil {
		t.Fatalf("create grandchild page: %v", err)
	}

	// Deleting the middle page reparents its children to the root.
	if err := svc.DeletePage(ctx, owner, ws.ID, child.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	pages, err := svc.ListPages(ctx, owner, ws.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	for _, page := range pages {
		if page.ID == grandchild.ID {
			if page.ParentID == nil || *page.ParentID != root.ID {
				t.Fatalf("grandchild not reparented to root: %+v", page)
			}
		}
	}
}

func TestTaskStatusMachine(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := snowflake.ID(1)

	ws, err := svc.Provision(ctx, domain.ProvisionRequest{Name: "Space", Type: domain.TypeService, OwnerID: owner})
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	task, err := svc.CreateTask(ctx, owner, domain.TaskRequest{WorkspaceID: ws.ID, Title: "Draft talk outline"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.Status != domain.TaskTodo {
		t.Fatalf("new task status = %s, want TODO", task.Status)
	}

	// A TODO task cannot jump straight to COMPLETED.
	if _, err := svc.MoveTask(ctx, owner, ws.ID, task.ID, domain.TaskCompleted); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	if _, err := svc.MoveTask(ctx, owner, ws.ID, task.ID, domain.TaskInProgress); err != nil {
		t.Fatalf("move to in progress: %v", err)
	}
	moved, err := svc.MoveTask(ctx, owner, ws.ID, task.ID, domain.TaskCompleted)
	if err != nil {
		t.Fatalf("move to completed: %v", err)
	}
	if moved.Status != domain.TaskCompleted {
		t.Fatalf("status = %s, want COMPLETED", moved.Status)
	}
}
