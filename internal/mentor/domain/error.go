package domain

import "errors"

var (
	ErrSessionNotFound   = errors.New("session_not_found")
	ErrSlotNotFound      = errors.New("slot_not_found")
	ErrSlotUnavailable   = errors.New("slot_unavailable")
	ErrSessionNotActive  = errors.New("session_not_scheduled")
	ErrInvalidTimeRange  = errors.New("invalid_time_range")
	ErrNotSessionMentor  = errors.New("not_session_mentor")
	ErrNotSessionStudent = errors.New("not_session_participant")
)
