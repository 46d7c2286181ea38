package domain

import "errors"

var (
	ErrInvalidSpec      = errors.New("invalid reminder spec")
	ErrUnknownCategory  = errors.New("unknown reminder category")
	ErrReminderNotFound = errors.New("reminder not found")
	ErrEntryNotFound    = errors.New("reminder entry not found")
)
