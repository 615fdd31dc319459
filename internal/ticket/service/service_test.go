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
	"github.com/tedxmekong/stagehub/internal/config"
	discountdomain "github.com/tedxmekong/stagehub/internal/discount/domain"
	discountrepo "github.com/tedxmekong/stagehub/internal/discount/repository"
	discountservice "github.com/tedxmekong/stagehub/internal/discount/service"
	eventdomain "github.com/tedxmekong/stagehub/internal/event/domain"
	eventrepo "github.com/tedxmekong/stagehub/internal/event/repository"
	eventservice "github.com/tedxmekong/stagehub/internal/event/service"
	notificationdomain "github.com/tedxmekong/stagehub/internal/notification/domain"
	notificationrepo "github.com/tedxmekong/stagehub/internal/notification/repository"
	notificationservice "github.com/tedxmekong/stagehub/internal/notification/service"
	orderdomain "github.com/tedxmekong/stagehub/internal/order/domain"
	orderrepo "github.com/tedxmekong/stagehub/internal/order/repository"
	orderservice "github.com/tedxmekong/stagehub/internal/order/service"
	productdomain "github.com/tedxmekong/stagehub/internal/product/domain"
	productrepo "github.com/tedxmekong/stagehub/internal/product/repository"
	"github.com/tedxmekong/stagehub/internal/providers/email"
	"github.com/tedxmekong/stagehub/internal/providers/pdf"
	"github.com/tedxmekong/stagehub/internal/ticket/domain"
	ticketrepo "github.com/tedxmekong/stagehub/internal/ticket/repository"
	"github.com/tedxmekong/stagehub/pkg/db"
	"go.uber.org/zap"
)

type fixture struct {
	tickets       domain.Service
	events        eventdomain.Service
	orders        orderdomain.Service
	notifications notificationdomain.Service
	userID        snowflake.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = conn.AutoMigrate(
		&authdomain.User{}, &authdomain.Session{}, &authdomain.EmailVerification{},
		&eventdomain.Event{}, &productdomain.Product{}, &cartdomain.CartItem{},
		&discountdomain.DiscountCode{},
		&orderdomain.Order{}, &orderdomain.OrderItem{},
		&domain.EventTicket{},
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
	holder := config.NewStaticCommerceHolder(config.DefaultCommerceConfig())

	mailer := email.NewFromConfig(config.Config{}, log, nil)
	users, sessions, verifications := authrepo.New(conn)
	auth := authservice.New(log, users, sessions, verifications, node, mailer, config.Config{})
	events := eventservice.New(log, eventrepo.New(conn), node)
	notifications := notificationservice.New(log, notificationrepo.New(conn), node)
	discounts := discountservice.New(log, discountrepo.New(conn), nil, node)

	orders := orderservice.New(orderservice.Params{
		Log:           log,
		DB:            conn,
		Repo:          orderrepo.New(conn),
		CartRepo:      cartrepo.New(conn),
		ProductRepo:   productrepo.New(conn),
		Discounts:     discounts,
		Commerce:      holder,
		Users:         auth,
		Notifications: notifications,
		Mailer:        mailer,
		Metrics:       nil,
		GenID:         node,
	})

	tickets := New(Params{
		Log:           log,
		DB:            conn,
		Repo:          ticketrepo.New(conn),
		Events:        events,
		Orders:        orders,
		Users:         auth,
		Notifications: notifications,
		Mailer:        mailer,
		Renderer:      pdf.NewRenderer(),
		Commerce:      holder,
		Metrics:       nil,
		GenID:         node,
	})

	reg, err := auth.Register(context.Background(), authdomain.RegisterRequest{
		Email: "attendee@example.com", Password: "attendee-pass", DisplayName: "An Nguyen",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	return &fixture{
		tickets:       tickets,
		events:        events,
		orders:        orders,
		notifications: notifications,
		userID:        reg.User.ID,
	}
}

func (f *fixture) approvedEvent(t *testing.T, name string, price int64) *eventdomain.Event {
	t.Helper()
	event, err := f.events.Create(context.Background(), eventdomain.CreateRequest{
		Name:        name,
		Date:        time.Now().Add(30 * 24 * time.Hour),
		Location:    "Can Tho University Hall",
		TicketPrice: price,
		Type:        eventdomain.TypeTEDx,
		CreatedBy:   1,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if err := f.events.Approve(context.Background(), event.ID); err != nil {
		t.Fatalf("approve event: %v", err)
	}
	return event
}

func TestPurchaseCreatesPendingTicketAndOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.approvedEvent(t, "TEDxMekong 2026", 250_000)

	ticket, err := f.tickets.Purchase(ctx, f.userID, event.ID)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if ticket.PaymentStatus != domain.PaymentPending {
		t.Fatalf("payment status = %s, want pending", ticket.PaymentStatus)
	}
	if ticket.QRCode == "" {
		t.Fatal("expected a qr code")
	}

	order, err := f.orders.Get(ctx, ticket.OrderID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if order.Order.Type != orderdomain.TypeTicket {
		t.Fatalf("order type = %s, want TICKET", order.Order.Type)
	}
	if order.Order.Status != orderdomain.StatusPending {
		t.Fatalf("order status = %s, want PENDING", order.Order.Status)
	}
	if order.Order.Total != 250_000 {
		t.Fatalf("order total = %d, want 250000", order.Order.Total)
	}

	// A calendar entry was dropped on the event date.
	entries, err := f.notifications.ListCalendar(ctx, f.userID, nil, nil)
	if err != nil {
		t.Fatalf("list calendar: %v", err)
	}
	if len(entries) != 1 || entries[0].Type != notificationdomain.CalendarTicket {
		t.Fatalf("expected one ticket calendar entry, got %+v", entries)
	}
}

func TestPurchaseRejectsUnapprovedEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending, err := f.events.Create(ctx, eventdomain.CreateRequest{
		Name: "Secret Workshop", Date: time.Now().Add(time.Hour),
		TicketPrice: 100_000, Type: eventdomain.TypeWorkshop, CreatedBy: 1,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	if _, err := f.tickets.Purchase(ctx, f.userID, pending.ID); !errors.Is(err, eventdomain.ErrEventNotFound) {
		t.Fatalf("expected event not found for unapproved, got %v", err)
	}
}

func TestConfirmPaymentFlipsTicketAndOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.approvedEvent(t, "TEDxMekong 2026", 250_000)

	ticket, err := f.tickets.Purchase(ctx, f.userID, event.ID)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}

	paid, err := f.tickets.ConfirmPayment(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if paid.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("payment status = %s, want paid", paid.PaymentStatus)
	}

	order, err := f.orders.Get(ctx, ticket.OrderID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if order.Order.Status != orderdomain.StatusProcessing {
		t.Fatalf("order status = %s, want PROCESSING", order.Order.Status)
	}

	// Confirming twice is rejected.
	if _, err := f.tickets.ConfirmPayment(ctx, ticket.ID); !errors.Is(err, domain.ErrTicketNotPending) {
		t.Fatalf("expected not pending on second confirm, got %v", err)
	}
}

func TestCancelPendingTicket(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.approvedEvent(t, "TEDxMekong 2026", 250_000)

	ticket, err := f.tickets.Purchase(ctx, f.userID, event.ID)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}

	cancelled, err := f.tickets.Cancel(ctx, f.userID, ticket.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.PaymentStatus != domain.PaymentCancelled {
		t.Fatalf("payment status = %s, want cancelled", cancelled.PaymentStatus)
	}

	order, err := f.orders.Get(ctx, ticket.OrderID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if order.Order.Status != orderdomain.StatusCancelled {
		t.Fatalf("order status = %s, want CANCELLED", order.Order.Status)
	}
}

func TestReceiptRequiresPaidTicket(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.approvedEvent(t, "TEDxMekong 2026", 250_000)

	ticket, err := f.tickets.Purchase(ctx, f.userID, event.ID)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}

	if _, err := f.tickets.ReceiptPDF(ctx, f.userID, ticket.ID); !errors.Is(err, domain.ErrTicketNotPaid) {
		t.Fatalf("expected not paid, got %v", err)
	}

	if _, err := f.tickets.ConfirmPayment(ctx, ticket.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	data, err := f.tickets.ReceiptPDF(ctx, f.userID, ticket.ID)
	if err != nil {
		t.Fatalf("receipt: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected pdf bytes")
	}
}
