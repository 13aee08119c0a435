package schedule

import "errors"

var (
	ErrEntryNotFound       = errors.New("schedule entry not found")
	ErrInvalidDateFormat   = errors.New("invalid date format, use YYYY-MM-DD")
	ErrRemoteNotConfigured = errors.New("remote schedule source is not configured")
)
