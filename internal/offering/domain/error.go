package domain

import "errors"

var (
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidPrice       = errors.New("invalid_price")
	ErrInvalidCategory    = errors.New("invalid_category")
	ErrOfferingNotFound   = errors.New("offering_not_found")
	ErrOfferingUnapproved = errors.New("offering_not_approved")
)
