package domain

import "errors"

var (
	ErrPurchaseNotFound = errors.New("purchase_not_found")
	ErrAlreadyPurchased = errors.New("already_purchased")
	ErrPurchaseInactive = errors.New("purchase_not_active")
)
