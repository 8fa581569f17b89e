package errors

import "errors"

var (
	ErrSubmitInProgress = errors.New("booking submission already in progress")

	ErrAlreadySubmitted = errors.New("booking already submitted")

	ErrUnknownField = errors.New("unknown booking form field")

	ErrCorruptLeadList = errors.New("stored lead list is not valid JSON")
)
