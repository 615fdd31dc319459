package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/discount/domain"
	"github.com/tedxmekong/stagehub/internal/discount/repository"
	"github.com/tedxmekong/stagehub/pkg/db"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.DiscountCode{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return New(zap.NewNop(), repository.New(conn), nil, node)
}

func TestStudentFiftyScenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{
		Code:       "student50",
		Type:       domain.TypePercentage,
		Value:      50,
		MinAmount:  50_000,
		MaxUses:    100,
		ValidUntil: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	quote, err := svc.Preview(ctx, "STUDENT50", 100_000)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if quote.DiscountAmount != 50_000 {
		t.Fatalf("discount = %d, want 50000", quote.DiscountAmount)
	}
	if quote.TotalAfter != 50_000 {
		t.Fatalf("total = %d, want 50000", quote.TotalAfter)
	}

	// Below the minimum the code does not apply.
	if _, err := svc.Preview(ctx, "STUDENT50", 40_000); !errors.Is(err, domain.ErrBelowMinAmount) {
		t.Fatalf("expected below-minimum, got %v", err)
	}
}

func TestFixedAmountNeverExceedsSubtotal(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{
		Code:       "FLAT70",
		Type:       domain.TypeFixedAmount,
		Value:      70_000,
		MaxUses:    10,
		ValidUntil: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	quote, err := svc.Preview(ctx, "FLAT70", 30_000)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if quote.DiscountAmount != 30_000 || quote.TotalAfter != 0 {
		t.Fatalf("quote = %+v, want discount clamped to subtotal", quote)
	}
}

func TestRedeemConsumesUses(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{
		Code:       "ONCE",
		Type:       domain.TypeFixedAmount,
		Value:      5_000,
		MaxUses:    1,
		ValidUntil: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Redeem(ctx, nil, "ONCE", 20_000); err != nil {
		t.Fatalf("first redeem: %v", err)
	}

	_, err = svc.Redeem(ctx, nil, "ONCE", 20_000)
	if !errors.Is(err, domain.ErrCodeExhausted) && !errors.Is(err, domain.ErrRedeemConflict) {
		t.Fatalf("expected exhausted code, got %v", err)
	}
}

func TestExpiredCodeRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{
		Code:       "OLD",
		Type:       domain.TypePercentage,
		Value:      10,
		MaxUses:    10,
		ValidUntil: time.Now().Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Preview(ctx, "OLD", 100_000); !errors.Is(err, domain.ErrCodeExpired) {
		t.Fatalf("expected expired, got %v", err)
	}
}
