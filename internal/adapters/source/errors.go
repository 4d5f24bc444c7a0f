package source

import "errors"

// Sentinel kinds for source errors.
var (
	ErrUnknownMentor = errors.New("unknown mentor")
)
