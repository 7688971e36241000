package order

import "errors"

var (
	ErrNotFound  = errors.New("order not found")
	ErrCartEmpty = errors.New("cart is empty")
	ErrForbidden = errors.New("cannot access another user's order")
)
