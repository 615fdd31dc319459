package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	offeringdomain "github.com/tedxmekong/stagehub/internal/offering/domain"
	offeringrepo "github.com/tedxmekong/stagehub/internal/offering/repository"
	offeringservice "github.com/tedxmekong/stagehub/internal/offering/service"
	"github.com/tedxmekong/stagehub/internal/purchase/domain"
	"github.com/tedxmekong/stagehub/internal/purchase/repository"
	workspacedomain "github.com/tedxmekong/stagehub/internal/workspace/domain"
	workspacerepo "github.com/tedxmekong/stagehub/internal/workspace/repository"
	workspaceservice "github.com/tedxmekong/stagehub/internal/workspace/service"
	"github.com/tedxmekong/stagehub/pkg/db"
	"go.uber.org/zap"
)

type fixture struct {
	purchases  domain.Service
	offerings  offeringdomain.Service
	workspaces workspacedomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = conn.AutoMigrate(
		&offeringdomain.Offering{}, &domain.ServicePurchase{},
		&workspacedomain.Workspace{}, &workspacedomain.Page{},
		&workspacedomain.Task{}, &workspacedomain.File{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	log := zap.NewNop()

	offerings := offeringservice.New(log, offeringrepo.New(conn), node)
	workspaces := workspaceservice.New(log, workspacerepo.New(conn), node)
	purchases := New(log, repository.New(conn), offerings, workspaces, node)
	return &fixture{purchases: purchases, offerings: offerings, workspaces: workspaces}
}

func (f *fixture) approvedOffering(t *testing.T, name string) *offeringdomain.Offering {
	t.Helper()
	offering, err := f.offerings.Create(context.Background(), offeringdomain.CreateRequest{
		Name: name, Price: 500_000, Category: offeringdomain.CategoryOnsite, CreatedBy: 1,
	})
	if err != nil {
		t.Fatalf("create offering: %v", err)
	}
	if err := f.offerings.Approve(context.Background(), offering.ID); err != nil {
		t.Fatalf("approve offering: %v", err)
	}
	return offering
}

func TestPurchaseProvisionsWorkspace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := snowflake.ID(42)
	offering := f.approvedOffering(t, "Speaker Coaching")

	purchase, err := f.purchases.Purchase(ctx, user, offering.ID)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if purchase.Status != domain.StatusActive {
		t.Fatalf("status = %s, want active", purchase.Status)
	}
	if purchase.WorkspaceID == nil {
		t.Fatal("expected a linked workspace")
	}

	ws, err := f.workspaces.Get(ctx, user, *purchase.WorkspaceID)
	if err != nil {
		t.Fatalf("get workspace: %v", err)
	}
	if ws.Type != workspacedomain.TypeService {
		t.Fatalf("workspace type = %s, want SERVICE", ws.Type)
	}
	if ws.Name != "Speaker Coaching" {
		t.Fatalf("workspace name = %q", ws.Name)
	}
}

func TestDuplicatePurchaseConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := snowflake.ID(42)
	offering := f.approvedOffering(t, "Coaching")

	if _, err := f.purchases.Purchase(ctx, user, offering.ID); err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	if _, err := f.purchases.Purchase(ctx, user, offering.ID); !errors.Is(err, domain.ErrAlreadyPurchased) {
		t.Fatalf("expected already purchased, got %v", err)
	}
}

func TestConcurrentPurchasesExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	user := snowflake.ID(42)
	offering := f.approvedOffering(t, "Coaching")

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, results[slot] = f.purchases.Purchase(context.Background(), user, offering.ID)
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrAlreadyPurchased):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("wins = %d, want exactly 1 (conflicts %d)", wins, conflicts)
	}
}

func TestProgressClampAndLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := snowflake.ID(42)
	offering := f.approvedOffering(t, "Coaching")

	purchase, err := f.purchases.Purchase(ctx, user, offering.ID)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}

	updated, err := f.purchases.UpdateProgress(ctx, purchase.ID, 150)
	if err != nil {
		t.Fatalf("update progress: %v", err)
	}
	if updated.Progress != 100 {
		t.Fatalf("progress = %d, want clamped 100", updated.Progress)
	}

	updated, err = f.purchases.UpdateProgress(ctx, purchase.ID, -5)
	if err != nil {
		t.Fatalf("update progress: %v", err)
	}
	if updated.Progress != 0 {
		t.Fatalf("progress = %d, want clamped 0", updated.Progress)
	}

	completed, err := f.purchases.Complete(ctx, purchase.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != domain.StatusCompleted || completed.Progress != 100 {
		t.Fatalf("completed = %+v", completed)
	}

	// Completed purchases accept no further updates.
	if _, err := f.purchases.UpdateProgress(ctx, purchase.ID, 50); !errors.Is(err, domain.ErrPurchaseInactive) {
		t.Fatalf("expected inactive, got %v", err)
	}
	if _, err := f.purchases.Cancel(ctx, user, purchase.ID); !errors.Is(err, domain.ErrPurchaseInactive) {
		t.Fatalf("expected inactive, got %v", err)
	}
}
