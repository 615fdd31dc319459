package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/offering/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(conn *gorm.DB) domain.Repository {
	return &repository{db: conn}
}

func (r *repository) Create(ctx context.Context, offering *domain.Offering) error {
	return r.db.WithContext(ctx).Create(offering).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Offering, error) {
	var offering domain.Offering
	err := r.db.WithContext(ctx).First(&offering, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOfferingNotFound
		}
		return nil, err
	}
	return &offering, nil
}

func (r *repository) List(ctx context.Context, approvedOnly bool) ([]domain.Offering, error) {
	query := r.db.WithContext(ctx).Model(&domain.Offering{})
	if approvedOnly {
		query = query.Where("approved = ?", true)
	}

	var offerings []domain.Offering
	if err := query.Order("created_at DESC").Find(&offerings).Error; err != nil {
		return nil, err
	}
	return offerings, nil
}

func (r *repository) UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&domain.Offering{}).
		Where("id = ?", id).
		Updates(fields).Error
}
