package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound     = errors.New("mentor not found")
	ErrInvalidLimit = errors.New("invalid listing limit")
)
