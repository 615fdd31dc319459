package repository

import (
	"context"
	"errors"

	"github.com/tedxmekong/stagehub/internal/discount/domain"
	"github.com/tedxmekong/stagehub/pkg/db"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(conn *gorm.DB) domain.Repository {
	return &repository{db: conn}
}

func (r *repository) Create(ctx context.Context, code *domain.DiscountCode) error {
	err := r.db.WithContext(ctx).Create(code).Error
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrCodeExists
	}
	return err
}

func (r *repository) FindByCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	var row domain.DiscountCode
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) List(ctx context.Context) ([]domain.DiscountCode, error) {
	var codes []domain.DiscountCode
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *repository) ConsumeUse(ctx context.Context, tx *gorm.DB, code string) error {
	if tx == nil {
		tx = r.db
	}
	// used_count < max_uses inside the WHERE clause makes concurrent
	// redemptions race-safe: past the cap the update matches no row.
	res := tx.WithContext(ctx).Exec(
		"UPDATE discount_codes SET used_count = used_count + 1, updated_at = CURRENT_TIMESTAMP WHERE code = ? AND used_count < max_uses AND valid_until >= CURRENT_TIMESTAMP",
		code,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRedeemConflict
	}
	return nil
}
