package domain

import "errors"

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidType     = errors.New("invalid_type")
	ErrInvalidDate     = errors.New("invalid_date")
	ErrEventNotFound   = errors.New("event_not_found")
	ErrEventUnapproved = errors.New("event_not_approved")
)
