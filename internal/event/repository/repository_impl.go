package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/event/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(conn *gorm.DB) domain.Repository {
	return &repository{db: conn}
}

func (r *repository) Create(ctx context.Context, event *domain.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Event, error) {
	var event domain.Event
	err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Event, error) {
	query := r.db.WithContext(ctx).Model(&domain.Event{})
	if filter.ApprovedOnly {
		query = query.Where("approved = ?", true)
	}
	if filter.After != nil {
		query = query.Where("date >= ?", *filter.After)
	}

	var events []domain.Event
	if err := query.Order("date ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *repository) UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&domain.Event{}).
		Where("id = ?", id).
		Updates(fields).Error
}
