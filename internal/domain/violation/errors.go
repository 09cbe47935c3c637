package violation

import "errors"

var (
	ErrViolationNotFound = errors.New("violation not found")
	ErrAlreadyWaived     = errors.New("violation already waived")
	ErrAlreadySubmitted  = errors.New("penalty already submitted")
)
