package domain

import "errors"

var (
	ErrNotificationNotFound  = errors.New("notification_not_found")
	ErrCalendarEventNotFound = errors.New("calendar_event_not_found")
	ErrInvalidTitle          = errors.New("invalid_title")
	ErrInvalidDate           = errors.New("invalid_date")
)
