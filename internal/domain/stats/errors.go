package stats

import "errors"

var (
	ErrInvalidDepartment = errors.New("invalid department code")
	ErrInvalidDateRange  = errors.New("invalid date range, from must not be after to")
	ErrDateRangeTooLarge = errors.New("date range exceeds the maximum allowed span")
)
