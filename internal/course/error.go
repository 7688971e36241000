package course

import "errors"

var (
	ErrNotFound = errors.New("course not found")
	ErrInactive = errors.New("course is not open for enrollment")
)
