package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// AddSlot publishes a bookable window in the mentor's schedule.
	AddSlot(ctx context.Context, req SlotRequest) (*Slot, error)
	ListSlots(ctx context.Context, mentorID snowflake.ID, availableOnly bool) ([]Slot, error)
	// ToggleSlot flips availability by hand (mentor blocking time off).
	ToggleSlot(ctx context.Context, mentorID, slotID snowflake.ID) (*Slot, error)
	RemoveSlot(ctx context.Context, mentorID, slotID snowflake.ID) error

	// Book takes an available slot. The availability flip is guarded so
	// two students racing for one slot resolve to a single booking.
	Book(ctx context.Context, req BookRequest) (*Session, error)
	ListForMentor(ctx context.Context, mentorID snowflake.ID) ([]Session, error)
	ListForStudent(ctx context.Context, studentID snowflake.ID) ([]Session, error)
	// Complete closes a scheduled session with mentor feedback.
	Complete(ctx context.Context, mentorID, sessionID snowflake.ID, feedback string) (*Session, error)
	// Cancel frees the slot. Either participant may cancel.
	Cancel(ctx context.Context, actorID, sessionID snowflake.ID) (*Session, error)
}

type SlotRequest struct {
	MentorID  snowflake.ID
	Date      time.Time
	StartTime string
	EndTime   string
}

type BookRequest struct {
	StudentID  snowflake.ID
	SlotID     snowflake.ID
	OfferingID *snowflake.ID
	Duration   int
}
