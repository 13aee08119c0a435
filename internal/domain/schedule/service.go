package schedule

import (
	"context"
	"time"
)

type LookupService interface {
	// LookupShifts returns the shifts for eventDate and the two days before it, reading the
	// local store first and falling back to the remote source inside the recency window.
	LookupShifts(ctx context.Context, employeeID string, eventDate time.Time, forceRemote bool) (LookupResult, error)
	// GetShiftByDate reads a single day from the local store. A nil code means no shift was recorded.
	GetShiftByDate(ctx context.Context, employeeID string, date time.Time) (*string, error)
	// BatchLookup returns exactly one entry per requested id; unresolved ids map to empty results.
	BatchLookup(ctx context.Context, employeeIDs []string, eventDate time.Time) map[string]LookupResult
}
