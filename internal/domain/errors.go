package domain

import "errors"

var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrSourceDisabled    = errors.New("source disabled")
	ErrInvalidDateRange  = errors.New("check-out date must be after check-in date")
	ErrRangeTooLong      = errors.New("date range cannot exceed 30 days")
	ErrInvalidBaseRate   = errors.New("base room rate must be positive")
	ErrStoreUnavailable  = errors.New("store not configured")
)
