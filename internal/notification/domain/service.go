package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Notify writes a notification for a user. System callers treat
	// failures as non-fatal and only log them.
	Notify(ctx context.Context, req NotifyRequest) (*Notification, error)
	ListMine(ctx context.Context, userID snowflake.ID) ([]Notification, error)
	MarkRead(ctx context.Context, userID, notificationID snowflake.ID) error
	MarkAllRead(ctx context.Context, userID snowflake.ID) error

	CreateCalendarEvent(ctx context.Context, req CalendarEventRequest) (*CalendarEvent, error)
	ListCalendar(ctx context.Context, userID snowflake.ID, from, to *time.Time) ([]CalendarEvent, error)
	UpdateCalendarEvent(ctx context.Context, req CalendarEventUpdate) (*CalendarEvent, error)
	DeleteCalendarEvent(ctx context.Context, userID, eventID snowflake.ID) error
}

type NotifyRequest struct {
	UserID    snowflake.ID
	Title     string
	Content   string
	Type      string
	RelatedID *snowflake.ID
}

type CalendarEventRequest struct {
	UserID    snowflake.ID
	Title     string
	Date      time.Time
	EndDate   *time.Time
	Type      string
	RelatedID *snowflake.ID
	Notes     string
}

type CalendarEventUpdate struct {
	ID      snowflake.ID
	UserID  snowflake.ID
	Title   *string
	Date    *time.Time
	EndDate *time.Time
	Notes   *string
}
