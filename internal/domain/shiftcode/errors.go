package shiftcode

import "errors"

var (
	ErrInvalidPeriod      = errors.New("invalid year or month")
	ErrNoEmployees        = errors.New("at least one employee is required")
	ErrEmptyGrid          = errors.New("shift grid has no employee rows")
	ErrGridHeaderNotFound = errors.New("shift grid header row not found")
	ErrGridPeriodUnknown  = errors.New("shift grid period could not be determined")
)
