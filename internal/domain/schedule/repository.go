package schedule

import (
	"context"
	"time"
)

type EntryRepository interface {
	GetByKey(ctx context.Context, employeeCode, departmentCode string, date time.Time) (Entry, error)
	// GetByDates returns the entries found for the given dates, keyed by YYYY-MM-DD.
	// Missing dates are absent from the map.
	GetByDates(ctx context.Context, employeeCode, departmentCode string, dates []time.Time) (map[string]Entry, error)
	// Upsert inserts or updates entries on (employee, department, date) and returns the number written.
	Upsert(ctx context.Context, entries []Entry) (int, error)
}

// RemoteSource is the upstream schedule system. Implementations may fail or time out;
// callers treat any error as "no data".
type RemoteSource interface {
	FetchSchedules(ctx context.Context, departmentCode string, from, to time.Time) ([]RemoteShift, error)
}
