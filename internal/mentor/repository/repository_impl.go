package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/mentor/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(conn *gorm.DB) domain.Repository {
	return &repository{db: conn}
}

func (r *repository) CreateSlot(ctx context.Context, slot *domain.Slot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *repository) FindSlot(ctx context.Context, id snowflake.ID) (*domain.Slot, error) {
	var slot domain.Slot
	err := r.db.WithContext(ctx).First(&slot, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}
	return &slot, nil
}

func (r *repository) ListSlots(ctx context.Context, mentorID snowflake.ID, availableOnly bool) ([]domain.Slot, error) {
	query := r.db.WithContext(ctx).Where("mentor_id = ?", mentorID)
	if availableOnly {
		query = query.Where("available = ?", true)
	}

	var slots []domain.Slot
	if err := query.Order("date ASC, start_time ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *repository) ClaimSlot(ctx context.Context, tx *gorm.DB, id snowflake.ID) error {
	if tx == nil {
		tx = r.db
	}
	// available = true in the guard means the second booker matches
	// nothing and loses cleanly.
	res := tx.WithContext(ctx).Exec(
		"UPDATE mentor_schedule_slots SET available = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND available = ?",
		false, id, true,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrSlotUnavailable
	}
	return nil
}

func (r *repository) ReleaseSlot(ctx context.Context, tx *gorm.DB, id snowflake.ID) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Exec(
		"UPDATE mentor_schedule_slots SET available = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		true, id,
	).Error
}

func (r *repository) SetSlotAvailability(ctx context.Context, id snowflake.ID, available bool) error {
	return r.db.WithContext(ctx).
		Model(&domain.Slot{}).
		Where("id = ?", id).
		Update("available", available).Error
}

func (r *repository) DeleteSlot(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Delete(&domain.Slot{}, "id = ?", id).Error
}

func (r *repository) CreateSession(ctx context.Context, tx *gorm.DB, session *domain.Session) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(session).Error
}

func (r *repository) FindSession(ctx context.Context, id snowflake.ID) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *repository) ListSessionsByMentor(ctx context.Context, mentorID snowflake.ID) ([]domain.Session, error) {
	var sessions []domain.Session
	err := r.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Order("date ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *repository) ListSessionsByStudent(ctx context.Context, studentID snowflake.ID) ([]domain.Session, error) {
	var sessions []domain.Session
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *repository) UpdateSessionFields(ctx context.Context, tx *gorm.DB, id snowflake.ID, fields map[string]any) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Model(&domain.Session{}).
		Where("id = ?", id).
		Updates(fields).Error
}
