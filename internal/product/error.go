package product

import "errors"

var (
	ErrNotFound = errors.New("product not found")
	ErrSoldOut  = errors.New("product is sold out")
)
