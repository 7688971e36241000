package campaign

import "errors"

var (
	ErrNotFound = errors.New("campaign not found")
	ErrExpired  = errors.New("campaign has passed its deadline")
	ErrInactive = errors.New("campaign is not active")
)
