package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("event not found")
	ErrInvalidLimit = errors.New("invalid listing limit")
	ErrInvalidEntry = errors.New("invalid verdict entry")
)
