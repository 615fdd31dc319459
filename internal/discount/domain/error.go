package domain

import "errors"

var (
	ErrInvalidCode    = errors.New("invalid_code")
	ErrInvalidType    = errors.New("invalid_type")
	ErrInvalidValue   = errors.New("invalid_value")
	ErrCodeNotFound   = errors.New("discount_code_not_found")
	ErrCodeExists     = errors.New("discount_code_exists")
	ErrCodeExpired    = errors.New("discount_code_expired")
	ErrCodeExhausted  = errors.New("discount_code_exhausted")
	ErrBelowMinAmount = errors.New("subtotal_below_minimum")
	ErrRedeemConflict = errors.New("discount_redeem_conflict")
)
