package stats

import (
	"context"
	"time"
)

// SyncService pulls remote schedules into the local store and derives daily stats.
// Remote failures never surface as errors; they are reported inside the results.
// Errors are returned only for invalid arguments.
type SyncService interface {
	SyncDateForDepartment(ctx context.Context, departmentCode string, date time.Time) (SyncResult, error)
	SyncDateRangeForDepartment(ctx context.Context, departmentCode string, from, to time.Time) (RangeSyncResult, error)
	SyncAllDepartments(ctx context.Context, date time.Time) (SyncAllResult, error)
	GetUnprocessedDates(ctx context.Context, departmentCode string, from, to time.Time) ([]string, error)
	GetSyncStatus(ctx context.Context, departmentCode string, from, to time.Time) (SyncStatus, error)
}
