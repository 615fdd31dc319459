package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/cart/domain"
	"github.com/tedxmekong/stagehub/pkg/db"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(conn *gorm.DB) domain.Repository {
	return &repository{db: conn}
}

func (r *repository) Upsert(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	existing, err := r.Find(ctx, item.UserID, item.ProductID)
	if err == nil {
		newQty := existing.Quantity + item.Quantity
		if err := r.UpdateQuantity(ctx, existing.ID, newQty); err != nil {
			return nil, err
		}
		existing.Quantity = newQty
		return existing, nil
	}
	if !errors.Is(err, domain.ErrItemNotFound) {
		return nil, err
	}

	if createErr := r.db.WithContext(ctx).Create(item).Error; createErr != nil {
		// A concurrent insert of the same pair won the race; fold this
		// add into the surviving row.
		if db.IsDuplicateKeyErr(createErr) {
			winner, findErr := r.Find(ctx, item.UserID, item.ProductID)
			if findErr != nil {
				return nil, findErr
			}
			newQty := winner.Quantity + item.Quantity
			if err := r.UpdateQuantity(ctx, winner.ID, newQty); err != nil {
				return nil, err
			}
			winner.Quantity = newQty
			return winner, nil
		}
		return nil, createErr
	}
	return item, nil
}

func (r *repository) Find(ctx context.Context, userID, productID snowflake.ID) (*domain.CartItem, error) {
	var item domain.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListLines(ctx context.Context, userID snowflake.ID) ([]domain.Line, error) {
	rows := []struct {
		domain.CartItem
		ProductName string
		UnitPrice   int64
		Stock       int
		Approved    bool
	}{}

	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.*, p.name AS product_name, p.price AS unit_price, p.stock AS stock, p.approved AS approved").
		Joins("JOIN products p ON p.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	lines := make([]domain.Line, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, domain.Line{
			Item:         row.CartItem,
			ProductName:  row.ProductName,
			UnitPrice:    row.UnitPrice,
			Stock:        row.Stock,
			Approved:     row.Approved,
			LineSubtotal: row.UnitPrice * int64(row.CartItem.Quantity),
		})
	}
	return lines, nil
}

func (r *repository) UpdateQuantity(ctx context.Context, id snowflake.ID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&domain.CartItem{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"quantity":   quantity,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *repository) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Delete(&domain.CartItem{}, "id = ?", id).Error
}

func (r *repository) DeleteAll(ctx context.Context, tx *gorm.DB, userID snowflake.ID) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Delete(&domain.CartItem{}, "user_id = ?", userID).Error
}
