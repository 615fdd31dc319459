package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	CreateSlot(ctx context.Context, slot *Slot) error
	FindSlot(ctx context.Context, id snowflake.ID) (*Slot, error)
	ListSlots(ctx context.Context, mentorID snowflake.ID, availableOnly bool) ([]Slot, error)
	// ClaimSlot atomically flips an available slot to unavailable,
	// returning ErrSlotUnavailable when it was already taken.
	ClaimSlot(ctx context.Context, tx *gorm.DB, id snowflake.ID) error
	ReleaseSlot(ctx context.Context, tx *gorm.DB, id snowflake.ID) error
	SetSlotAvailability(ctx context.Context, id snowflake.ID, available bool) error
	DeleteSlot(ctx context.Context, id snowflake.ID) error

	CreateSession(ctx context.Context, tx *gorm.DB, session *Session) error
	FindSession(ctx context.Context, id snowflake.ID) (*Session, error)
	ListSessionsByMentor(ctx context.Context, mentorID snowflake.ID) ([]Session, error)
	ListSessionsByStudent(ctx context.Context, studentID snowflake.ID) ([]Session, error)
	UpdateSessionFields(ctx context.Context, tx *gorm.DB, id snowflake.ID, fields map[string]any) error
}
