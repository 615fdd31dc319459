package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/tedxmekong/stagehub/internal/auth/domain"
	authrepo "github.com/tedxmekong/stagehub/internal/auth/repository"
	authservice "github.com/tedxmekong/stagehub/internal/auth/service"
	cartdomain "github.com/tedxmekong/stagehub/internal/cart/domain"
	cartrepo "github.com/tedxmekong/stagehub/internal/cart/repository"
	cartservice "github.com/tedxmekong/stagehub/internal/cart/service"
	"github.com/tedxmekong/stagehub/internal/config"
	discountdomain "github.com/tedxmekong/stagehub/internal/discount/domain"
	discountrepo "github.com/tedxmekong/stagehub/internal/discount/repository"
	discountservice "github.com/tedxmekong/stagehub/internal/discount/service"
	notificationdomain "github.com/tedxmekong/stagehub/internal/notification/domain"
	notificationrepo "github.com/tedxmekong/stagehub/internal/notification/repository"
	notificationservice "github.com/tedxmekong/stagehub/internal/notification/service"
	"github.com/tedxmekong/stagehub/internal/order/domain"
	orderrepo "github.com/tedxmekong/stagehub/internal/order/repository"
	productdomain "github.com/tedxmekong/stagehub/internal/product/domain"
	productrepo "github.com/tedxmekong/stagehub/internal/product/repository"
	productservice "github.com/tedxmekong/stagehub/internal/product/service"
	"github.com/tedxmekong/stagehub/internal/providers/email"
	"github.com/tedxmekong/stagehub/pkg/db"
	"go.uber.org/zap"
)

type fixture struct {
	orders    domain.Service
	carts     cartdomain.Service
	products  productdomain.Service
	discounts discountdomain.Service
	auth      authdomain.Service
	userID    snowflake.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = conn.AutoMigrate(
		&authdomain.User{}, &authdomain.Session{}, &authdomain.EmailVerification{},
		&productdomain.Product{}, &cartdomain.CartItem{},
		&discountdomain.DiscountCode{},
		&domain.Order{}, &domain.OrderItem{},
		&notificationdomain.Notification{}, &notificationdomain.CalendarEvent{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	log := zap.NewNop()

	mailer := email.NewFromConfig(config.Config{}, log, nil)
	users, sessions, verifications := authrepo.New(conn)
	auth := authservice.New(log, users, sessions, verifications, node, mailer, config.Config{})

	products := productservice.New(log, productrepo.New(conn), node)
	carts := cartservice.New(log, cartrepo.New(conn), products, node)
	discounts := discountservice.New(log, discountrepo.New(conn), nil, node)
	notifications := notificationservice.New(log, notificationrepo.New(conn), node)

	orders := New(Params{
		Log:           log,
		DB:            conn,
		Repo:          orderrepo.New(conn),
		CartRepo:      cartrepo.New(conn),
		ProductRepo:   productrepo.New(conn),
		Discounts:     discounts,
		Commerce:      config.NewStaticCommerceHolder(config.DefaultCommerceConfig()),
		Users:         auth,
		Notifications: notifications,
		Mailer:        mailer,
		Metrics:       nil,
		GenID:         node,
	})

	reg, err := auth.Register(context.Background(), authdomain.RegisterRequest{
		Email: "buyer@example.com", Password: "buyer-pass",
	})
	if err != nil {
		t.Fatalf("register buyer: %v", err)
	}

	return &fixture{
		orders:    orders,
		carts:     carts,
		products:  products,
		discounts: discounts,
		auth:      auth,
		userID:    reg.User.ID,
	}
}

func (f *fixture) approvedProduct(t *testing.T, name string, price int64, stock int) *productdomain.Product {
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

func TestCheckoutTotalsReconcile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tee := f.approvedProduct(t, "Event Tee", 150_000, 10)
	cap := f.approvedProduct(t, "Cap", 80_000, 10)

	if _, err := f.carts.Add(ctx, f.userID, tee.ID, 2); err != nil {
		t.Fatalf("add tee: %v", err)
	}
	if _, err := f.carts.Add(ctx, f.userID, cap.ID, 1); err != nil {
		t.Fatalf("add cap: %v", err)
	}

	result, err := f.orders.Checkout(ctx, domain.CheckoutRequest{
		UserID:          f.userID,
		ShippingAddress: "12 Hai Ba Trung, Can Tho",
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	order := result.Order
	if order.Subtotal != 380_000 {
		t.Fatalf("subtotal = %d, want 380000", order.Subtotal)
	}
	if order.ShippingFee != 30_000 {
		t.Fatalf("shipping fee = %d, want 30000", order.ShippingFee)
	}
	if order.Total != 410_000 {
		t.Fatalf("total = %d, want 410000", order.Total)
	}

	var itemsSum int64
	for _, item := range result.Items {
		itemsSum += item.UnitPrice * int64(item.Quantity)
	}
	if itemsSum != order.Subtotal {
		t.Fatalf("sum(items) = %d != subtotal %d", itemsSum, order.Subtotal)
	}

	// Stock was decremented and the cart cleared.
	teeAfter, err := f.products.Get(ctx, tee.ID)
	if err != nil {
		t.Fatalf("get tee: %v", err)
	}
	if teeAfter.Stock != 8 {
		t.Fatalf("tee stock = %d, want 8", teeAfter.Stock)
	}
	lines, err := f.carts.List(ctx, f.userID)
	if err != nil {
		t.Fatalf("list cart: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("cart not cleared, %d lines left", len(lines))
	}
}

func TestCheckoutWithDiscount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	book := f.approvedProduct(t, "Speaker Handbook", 100_000, 5)
	if _, err := f.carts.Add(ctx, f.userID, book.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := f.discounts.Create(ctx, discountdomain.CreateRequest{
		Code:       "STUDENT50",
		Type:       discountdomain.TypePercentage,
		Value:      50,
		MinAmount:  50_000,
		MaxUses:    10,
		ValidUntil: time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatalf("create discount: %v", err)
	}

	result, err := f.orders.Checkout(ctx, domain.CheckoutRequest{
		UserID:          f.userID,
		ShippingAddress: "12 Hai Ba Trung, Can Tho",
		DiscountCode:    "student50",
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if result.Order.DiscountAmount != 50_000 {
		t.Fatalf("discount = %d, want 50000", result.Order.DiscountAmount)
	}
	if result.Order.Total != 80_000 {
		t.Fatalf("total = %d, want 80000 (100000 - 50000 + 30000)", result.Order.Total)
	}

	code, err := f.discounts.Get(ctx, "STUDENT50")
	if err != nil {
		t.Fatalf("get code: %v", err)
	}
	if code.UsedCount != 1 {
		t.Fatalf("used count = %d, want 1", code.UsedCount)
	}
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	scarce := f.approvedProduct(t, "Limited Poster", 60_000, 1)
	if _, err := f.carts.Add(ctx, f.userID, scarce.ID, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err := f.orders.Checkout(ctx, domain.CheckoutRequest{
		UserID:          f.userID,
		ShippingAddress: "12 Hai Ba Trung, Can Tho",
	})
	if !errors.Is(err, productdomain.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	// Nothing was committed: stock intact, cart intact, no orders.
	after, err := f.products.Get(ctx, scarce.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if after.Stock != 1 {
		t.Fatalf("stock = %d, want 1", after.Stock)
	}
	lines, err := f.carts.List(ctx, f.userID)
	if err != nil {
		t.Fatalf("list cart: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("cart should survive failed checkout, got %d lines", len(lines))
	}
	orders, err := f.orders.ListMine(ctx, f.userID)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("no order should exist, got %d", len(orders))
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.orders.Checkout(context.Background(), domain.CheckoutRequest{
		UserID:          f.userID,
		ShippingAddress: "somewhere",
	})
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected empty cart, got %v", err)
	}
}

func TestStatusMachine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tee := f.approvedProduct(t, "Tee", 100_000, 5)
	if _, err := f.carts.Add(ctx, f.userID, tee.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	result, err := f.orders.Checkout(ctx, domain.CheckoutRequest{UserID: f.userID, ShippingAddress: "addr"})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	id := result.Order.ID

	// PENDING cannot jump straight to SHIPPED.
	if _, err := f.orders.AdvanceStatus(ctx, id, domain.StatusShipped); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	for _, status := range []string{domain.StatusProcessing, domain.StatusShipped, domain.StatusDelivered, domain.StatusRefunded} {
		if _, err := f.orders.AdvanceStatus(ctx, id, status); err != nil {
			t.Fatalf("advance to %s: %v", status, err)
		}
	}

	// REFUNDED is terminal.
	if _, err := f.orders.AdvanceStatus(ctx, id, domain.StatusPending); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition from terminal state, got %v", err)
	}
}

func TestCancelRestoresStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tee := f.approvedProduct(t, "Tee", 100_000, 5)
	if _, err := f.carts.Add(ctx, f.userID, tee.ID, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	result, err := f.orders.Checkout(ctx, domain.CheckoutRequest{UserID: f.userID, ShippingAddress: "addr"})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	mid, err := f.products.Get(ctx, tee.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if mid.Stock != 2 {
		t.Fatalf("stock after checkout = %d, want 2", mid.Stock)
	}

	cancelled, err := f.orders.Cancel(ctx, f.userID, result.Order.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != domain.StatusCancelled {
		t.Fatalf("status = %s, want CANCELLED", cancelled.Status)
	}

	after, err := f.products.Get(ctx, tee.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if after.Stock != 5 {
		t.Fatalf("stock after cancel = %d, want 5", after.Stock)
	}

	// A cancelled order cannot be cancelled again.
	if _, err := f.orders.Cancel(ctx, f.userID, result.Order.ID); !errors.Is(err, domain.ErrNotCancellable) {
		t.Fatalf("expected not cancellable, got %v", err)
	}
}
