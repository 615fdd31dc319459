package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/discount/domain"
	"github.com/tedxmekong/stagehub/internal/observability/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	log     *zap.Logger
	repo    domain.Repository
	metrics *metrics.Metrics
	genID   *snowflake.Node
}

func New(log *zap.Logger, repo domain.Repository, m *metrics.Metrics, genID *snowflake.Node) domain.Service {
	return &Service{
		log:     log.Named("discount.service"),
		repo:    repo,
		metrics: m,
		genID:   genID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.DiscountCode, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, domain.ErrInvalidCode
	}
	if !domain.ValidType(req.Type) {
		return nil, domain.ErrInvalidType
	}
	if req.Value <= 0 || (req.Type == domain.TypePercentage && req.Value > 100) {
		return nil, domain.ErrInvalidValue
	}
	if req.MaxUses <= 0 || req.MinAmount < 0 {
		return nil, domain.ErrInvalidValue
	}

	row := &domain.DiscountCode{
		ID:         s.genID.Generate(),
		Code:       code,
		Type:       req.Type,
		Value:      req.Value,
		MinAmount:  req.MinAmount,
		MaxUses:    req.MaxUses,
		ValidUntil: req.ValidUntil.UTC(),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}

	s.log.Info("discount code created",
		zap.String("code", row.Code),
		zap.String("type", row.Type),
		zap.Int("max_uses", row.MaxUses),
	)
	return row, nil
}

func (s *Service) Get(ctx context.Context, code string) (*domain.DiscountCode, error) {
	return s.repo.FindByCode(ctx, normalizeCode(code))
}

func (s *Service) List(ctx context.Context) ([]domain.DiscountCode, error) {
	return s.repo.List(ctx)
}

func (s *Service) Preview(ctx context.Context, code string, subtotal int64) (*domain.Quote, error) {
	row, err := s.repo.FindByCode(ctx, normalizeCode(code))
	if err != nil {
		return nil, err
	}
	if err := validateAgainst(row, subtotal); err != nil {
		return nil, err
	}
	return quoteFor(row, subtotal), nil
}

func (s *Service) Redeem(ctx context.Context, tx *gorm.DB, code string, subtotal int64) (*domain.Quote, error) {
	normalized := normalizeCode(code)

	row, err := s.repo.FindByCode(ctx, normalized)
	if err != nil {
		s.metrics.RecordDiscountRedemption("not_found")
		return nil, err
	}
	if err := validateAgainst(row, subtotal); err != nil {
		s.metrics.RecordDiscountRedemption("rejected")
		return nil, err
	}

	if err := s.repo.ConsumeUse(ctx, tx, normalized); err != nil {
		s.metrics.RecordDiscountRedemption("conflict")
		return nil, err
	}

	s.metrics.RecordDiscountRedemption("ok")
	return quoteFor(row, subtotal), nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validateAgainst(row *domain.DiscountCode, subtotal int64) error {
	if time.Now().UTC().After(row.ValidUntil) {
		return domain.ErrCodeExpired
	}
	if row.UsedCount >= row.MaxUses {
		return domain.ErrCodeExhausted
	}
	if subtotal < row.MinAmount {
		return domain.ErrBelowMinAmount
	}
	return nil
}

// quoteFor computes the discount, clamped so it never exceeds the
// subtotal.
func quoteFor(row *domain.DiscountCode, subtotal int64) *domain.Quote {
	var amount int64
	switch row.Type {
	case domain.TypePercentage:
		amount = subtotal * row.Value / 100
	case domain.TypeFixedAmount:
		amount = row.Value
	}
	if amount > subtotal {
		amount = subtotal
	}
	return &domain.Quote{
		Code:           row.Code,
		DiscountAmount: amount,
		TotalAfter:     subtotal - amount,
	}
}
