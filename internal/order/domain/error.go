package domain

import "errors"

var (
	ErrOrderNotFound      = errors.New("order_not_found")
	ErrEmptyCart          = errors.New("empty_cart")
	ErrProductUnavailable = errors.New("product_unavailable")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrInvalidTransition  = errors.New("invalid_status_transition")
	ErrNotCancellable     = errors.New("order_not_cancellable")
	ErrInvalidAddress     = errors.New("invalid_shipping_address")
	ErrInvalidPageToken   = errors.New("invalid_page_token")
)
