package domain

import "errors"

var (
	ErrTicketNotFound   = errors.New("ticket_not_found")
	ErrTicketNotPending = errors.New("ticket_not_pending")
	ErrTicketNotPaid    = errors.New("ticket_not_paid")
	ErrInvalidSignature = errors.New("invalid_webhook_signature")
	ErrUnknownProvider  = errors.New("unknown_payment_provider")
)
