package field

import "errors"

var (
	// ErrInvalidParams indicates a non-positive or inverted tuning value.
	ErrInvalidParams = errors.New("field: invalid params")

	// ErrUnknownMode indicates a theme mode name other than light or dark.
	ErrUnknownMode = errors.New("field: unknown mode")
)
