package domain

import "errors"

var (
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrItemNotFound    = errors.New("cart_item_not_found")
	ErrEmptyCart       = errors.New("empty_cart")
)
