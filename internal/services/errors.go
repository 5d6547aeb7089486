package services

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidReference = errors.New("invalid reference")
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
	ErrNoJournalEntries = errors.New("no journal entries found for user")
	ErrInvalidWindow    = errors.New("start_date must not be after end_date")
)
