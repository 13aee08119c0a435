package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/database"
)

type dailyShiftStatRepositoryImpl struct {
	db *database.SQLiteDB
}

func NewDailyShiftStatRepository(db *database.SQLiteDB) stats.DailyShiftStatRepository {
	return &dailyShiftStatRepositoryImpl{db: db}
}

// Upsert implements stats.DailyShiftStatRepository.
func (r *dailyShiftStatRepositoryImpl) Upsert(ctx context.Context, stat stats.DailyShiftStat) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_shift_stats (
			employee_code, department_code, shift_date, shift_code, base_code,
			standard_minutes, overtime_minutes, total_minutes,
			is_leave, leave_kind, is_r_shift, is_national_holiday, sync_run_id, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (employee_code, department_code, shift_date) DO UPDATE SET
			shift_code = excluded.shift_code,
			base_code = excluded.base_code,
			standard_minutes = excluded.standard_minutes,
			overtime_minutes = excluded.overtime_minutes,
			total_minutes = excluded.total_minutes,
			is_leave = excluded.is_leave,
			leave_kind = excluded.leave_kind,
			is_r_shift = excluded.is_r_shift,
			is_national_holiday = excluded.is_national_holiday,
			sync_run_id = excluded.sync_run_id,
			updated_at = excluded.updated_at
	`,
		stat.EmployeeCode, stat.DepartmentCode, formatDate(stat.Date), stat.ShiftCode, stat.BaseCode,
		stat.StandardMinutes, stat.OvertimeMinutes, stat.TotalMinutes,
		stat.IsLeave, stat.LeaveKind, stat.IsRShift, stat.IsNationalHoliday,
		stat.SyncRunID.String(), formatTimestamp(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert daily shift stat for %s on %s: %w",
			stat.EmployeeCode, formatDate(stat.Date), err)
	}
	return nil
}

// ListProcessedDates implements stats.DailyShiftStatRepository.
func (r *dailyShiftStatRepositoryImpl) ListProcessedDates(ctx context.Context, departmentCode string, from, to time.Time) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT shift_date
		FROM daily_shift_stats
		WHERE department_code = ? AND shift_date BETWEEN ? AND ?
		ORDER BY shift_date
	`, departmentCode, formatDate(from), formatDate(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list processed dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		d, err := parseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid stored date %q: %w", raw, err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}
