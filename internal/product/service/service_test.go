package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/product/domain"
	"github.com/tedxmekong/stagehub/internal/product/repository"
	"github.com/tedxmekong/stagehub/pkg/db"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return New(zap.NewNop(), repository.New(conn), node)
}

func TestPublicCatalogHidesUnapproved(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product, err := svc.Create(ctx, domain.CreateRequest{Name: "Event Tee", Price: 150_000, Stock: 10, CreatedBy: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	public, err := svc.ListPublic(ctx)
	if err != nil {
		t.Fatalf("list public: %v", err)
	}
	if len(public) != 0 {
		t.Fatalf("unapproved product leaked into public catalog: %+v", public)
	}

	if err := svc.Approve(ctx, product.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	public, err = svc.ListPublic(ctx)
	if err != nil {
		t.Fatalf("list public: %v", err)
	}
	if len(public) != 1 {
		t.Fatalf("expected one approved product, got %d", len(public))
	}
}

func TestAdjustStockNeverGoesNegative(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product, err := svc.Create(ctx, domain.CreateRequest{Name: "Sticker Pack", Price: 20_000, Stock: 3, CreatedBy: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.AdjustStock(ctx, product.ID, -2)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if updated.Stock != 1 {
		t.Fatalf("stock = %d, want 1", updated.Stock)
	}

	if _, err := svc.AdjustStock(ctx, product.ID, -2); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	updated, err = svc.AdjustStock(ctx, product.ID, 5)
	if err != nil {
		t.Fatalf("restock: %v", err)
	}
	if updated.Stock != 6 {
		t.Fatalf("stock after restock = %d, want 6", updated.Stock)
	}
}
