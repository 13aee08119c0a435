package stats

import (
	"context"
	"time"
)

type DailyShiftStatRepository interface {
	Upsert(ctx context.Context, stat DailyShiftStat) error
	// ListProcessedDates returns the distinct dates in [from, to] with at least one stat row.
	ListProcessedDates(ctx context.Context, departmentCode string, from, to time.Time) ([]time.Time, error)
}

type ShiftDurationRepository interface {
	// GetByDepartment returns shift code -> standard minutes, with department-specific
	// rows overriding wildcard rows.
	GetByDepartment(ctx context.Context, departmentCode string) (map[string]int, error)
	Upsert(ctx context.Context, durations []ShiftDuration) error
}
