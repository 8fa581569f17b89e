package errors

import "errors"

var (
	ErrInvalidVisitorID = errors.New("visitor id must be a UUID")

	ErrCorruptTimer = errors.New("stored offer timer is not a unix millisecond value")
)
