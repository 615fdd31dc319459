package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/cart/domain"
	"github.com/tedxmekong/stagehub/internal/cart/repository"
	productdomain "github.com/tedxmekong/stagehub/internal/product/domain"
	productrepo "github.com/tedxmekong/stagehub/internal/product/repository"
	productservice "github.com/tedxmekong/stagehub/internal/product/service"
	"github.com/tedxmekong/stagehub/pkg/db"
	"go.uber.org/zap"
)

type fixture struct {
	carts    domain.Service
	products productdomain.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.CartItem{}, &productdomain.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	products := productservice.New(zap.NewNop(), productrepo.New(conn), node)
	carts := New(zap.NewNop(), repository.New(conn), products, node)
	return fixture{carts: carts, products: products}
}

func (f fixture) approvedProduct(t *testing.T, name string, price int64, stock int) *productdomain.Product {
	t.Helper()
	product, err := f.products.Create(context.Background(), productdomain.CreateRequest{
		Name: name, Price: price, Stock: stock, CreatedBy: 1,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if err := f.products.Approve(context.Background(), product.ID); err != nil {
		t.Fatalf("approve product: %v", err)
	}
	return product
}

func TestAddUpsertsQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := snowflake.ID(7)
	tee := f.approvedProduct(t, "Event Tee", 150_000, 20)

	if _, err := f.carts.Add(ctx, user, tee.ID, 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	item, err := f.carts.Add(ctx, user, tee.ID, 2)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if item.Quantity != 3 {
		t.Fatalf("quantity = %d, want 3", item.Quantity)
	}

	lines, err := f.carts.List(ctx, user)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected a single line, got %d", len(lines))
	}
	if lines[0].LineSubtotal != 450_000 {
		t.Fatalf("line subtotal = %d, want 450000", lines[0].LineSubtotal)
	}
}

func TestAddRejectsUnapprovedProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending, err := f.products.Create(ctx, productdomain.CreateRequest{Name: "Pending", Price: 10_000, Stock: 5, CreatedBy: 1})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	if _, err := f.carts.Add(ctx, 7, pending.ID, 1); !errors.Is(err, productdomain.ErrProductNotFound) {
		t.Fatalf("expected product not found for unapproved, got %v", err)
	}
}

func TestUpdateRemoveClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := snowflake.ID(7)
	tee := f.approvedProduct(t, "Tee", 100_000, 10)
	cap := f.approvedProduct(t, "Cap", 80_000, 10)

	if _, err := f.carts.Add(ctx, user, tee.ID, 1); err != nil {
		t.Fatalf("add tee: %v", err)
	}
	if _, err := f.carts.Add(ctx, user, cap.ID, 1); err != nil {
		t.Fatalf("add cap: %v", err)
	}

	item, err := f.carts.UpdateQuantity(ctx, user, tee.ID, 5)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if item.Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", item.Quantity)
	}

	if _, err := f.carts.UpdateQuantity(ctx, user, tee.ID, 0); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}

	if err := f.carts.Remove(ctx, user, cap.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := f.carts.Clear(ctx, user); err != nil {
		t.Fatalf("clear: %v", err)
	}

	lines, err := f.carts.List(ctx, user)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}
}
