package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	ListByUser(ctx context.Context, userID snowflake.ID) ([]Notification, error)
	FindByID(ctx context.Context, id snowflake.ID) (*Notification, error)
	MarkRead(ctx context.Context, id snowflake.ID) error
	MarkAllRead(ctx context.Context, userID snowflake.ID) error

	CreateCalendarEvent(ctx context.Context, event *CalendarEvent) error
	FindCalendarEvent(ctx context.Context, id snowflake.ID) (*CalendarEvent, error)
	ListCalendarEvents(ctx context.Context, userID snowflake.ID, from, to *time.Time) ([]CalendarEvent, error)
	UpdateCalendarFields(ctx context.Context, id snowflake.ID, fields map[string]any) error
	DeleteCalendarEvent(ctx context.Context, id snowflake.ID) error
}
