package model

import "errors"

// Sentinel kinds for entity validation errors.
var (
	ErrInvalidEvent = errors.New("invalid event")
)
