package payment

import "errors"

var (
	ErrNotFound         = errors.New("payment not found")
	ErrBadSignature     = errors.New("invalid notification signature")
	ErrUnknownReference = errors.New("notification references an unknown payment")
)
