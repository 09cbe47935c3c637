package penalty

import "errors"

var (
	ErrClusterNotFound      = errors.New("no matching shift cluster found")
	ErrUserNotAbsent        = errors.New("user is not absent for this cluster")
	ErrRecipientNotPresent  = errors.New("bonus recipient is not present in this cluster")
	ErrInvalidPenaltyAmount = errors.New("penalty amount must be positive")
)
