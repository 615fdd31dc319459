package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/learning/domain"
	"github.com/tedxmekong/stagehub/internal/learning/repository"
	"github.com/tedxmekong/stagehub/pkg/db"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.Progress{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return New(zap.NewNop(), repository.New(conn), node)
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	user := snowflake.ID(1)

	first, err := svc.Upsert(ctx, domain.UpsertRequest{UserID: user, OfferingID: 100, CompletionPercent: 30})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if first.CompletionPercent != 30 {
		t.Fatalf("percent = %d, want 30", first.CompletionPercent)
	}

	second, err := svc.Upsert(ctx, domain.UpsertRequest{UserID: user, OfferingID: 100, CompletionPercent: 130})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatal("second upsert should update the same row")
	}
	if second.CompletionPercent != 100 {
		t.Fatalf("percent = %d, want clamped 100", second.CompletionPercent)
	}

	rows, err := svc.ListMine(ctx, user)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
}

func TestSummaryAveragesRounded(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	user := snowflake.ID(1)

	empty, err := svc.Summarize(ctx, user)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if empty.Courses != 0 || empty.AveragePercent != 0 {
		t.Fatalf("empty summary = %+v, want zeros", empty)
	}

	for offering, percent := range map[snowflake.ID]int{100: 33, 101: 34, 102: 34} {
		if _, err := svc.Upsert(ctx, domain.UpsertRequest{UserID: user, OfferingID: offering, CompletionPercent: percent}); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	summary, err := svc.Summarize(ctx, user)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.Courses != 3 {
		t.Fatalf("courses = %d, want 3", summary.Courses)
	}
	// (33+34+34)/3 = 33.67 rounds to 34.
	if summary.AveragePercent != 34 {
		t.Fatalf("average = %d, want 34", summary.AveragePercent)
	}
}
