package journal

import "errors"

var (
	ErrInvalidID   = errors.New("entry id must be a valid UUID")
	ErrInvalidDate = errors.New("invalid date format, expected ISO 8601")
)
