package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/learning/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(conn *gorm.DB) domain.Repository {
	return &repository{db: conn}
}

func (r *repository) Find(ctx context.Context, userID, offeringID snowflake.ID) (*domain.Progress, error) {
	var progress domain.Progress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND offering_id = ?", userID, offeringID).
		First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProgressNotFound
		}
		return nil, err
	}
	return &progress, nil
}

func (r *repository) Create(ctx context.Context, progress *domain.Progress) error {
	return r.db.WithContext(ctx).Create(progress).Error
}

func (r *repository) UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&domain.Progress{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repository) ListByUser(ctx context.Context, userID snowflake.ID) ([]domain.Progress, error) {
	var rows []domain.Progress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_accessed_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
