package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/purchase/domain"
	"github.com/tedxmekong/stagehub/pkg/db"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(conn *gorm.DB) domain.Repository {
	return &repository{db: conn}
}

func (r *repository) Create(ctx context.Context, purchase *domain.ServicePurchase) error {
	err := r.db.WithContext(ctx).Create(purchase).Error
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrAlreadyPurchased
	}
	return err
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.ServicePurchase, error) {
	var purchase domain.ServicePurchase
	err := r.db.WithContext(ctx).First(&purchase, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *repository) ListByUser(ctx context.Context, userID snowflake.ID) ([]domain.ServicePurchase, error) {
	var purchases []domain.ServicePurchase
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *repository) UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&domain.ServicePurchase{}).
		Where("id = ?", id).
		Updates(fields).Error
}
