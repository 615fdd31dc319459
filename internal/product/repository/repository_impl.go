package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/product/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(conn *gorm.DB) domain.Repository {
	return &repository{db: conn}
}

func (r *repository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *repository) List(ctx context.Context, approvedOnly bool) ([]domain.Product, error) {
	query := r.db.WithContext(ctx).Model(&domain.Product{})
	if approvedOnly {
		query = query.Where("approved = ?", true)
	}

	var products []domain.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repository) DecrementStock(ctx context.Context, tx *gorm.DB, id snowflake.ID, qty int) error {
	if tx == nil {
		tx = r.db
	}
	// The stock >= qty guard makes concurrent decrements race-safe: the
	// losing writer matches zero rows instead of driving stock negative.
	res := tx.WithContext(ctx).Exec(
		"UPDATE products SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND stock >= ?",
		qty, id, qty,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

func (r *repository) RestoreStock(ctx context.Context, tx *gorm.DB, id snowflake.ID, qty int) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Exec(
		"UPDATE products SET stock = stock + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		qty, id,
	).Error
}
