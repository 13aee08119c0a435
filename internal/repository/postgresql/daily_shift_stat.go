package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/database"
)

type dailyShiftStatRepositoryImpl struct {
	db *database.DB
}

func NewDailyShiftStatRepository(db *database.DB) stats.DailyShiftStatRepository {
	return &dailyShiftStatRepositoryImpl{db: db}
}

// Upsert implements stats.DailyShiftStatRepository.
func (r *dailyShiftStatRepositoryImpl) Upsert(ctx context.Context, stat stats.DailyShiftStat) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO daily_shift_stats (
			employee_code, department_code, shift_date, shift_code, base_code,
			standard_minutes, overtime_minutes, total_minutes,
			is_leave, leave_kind, is_r_shift, is_national_holiday, sync_run_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13::uuid)
		ON CONFLICT (employee_code, department_code, shift_date) DO UPDATE SET
			shift_code = EXCLUDED.shift_code,
			base_code = EXCLUDED.base_code,
			standard_minutes = EXCLUDED.standard_minutes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			total_minutes = EXCLUDED.total_minutes,
			is_leave = EXCLUDED.is_leave,
			leave_kind = EXCLUDED.leave_kind,
			is_r_shift = EXCLUDED.is_r_shift,
			is_national_holiday = EXCLUDED.is_national_holiday,
			sync_run_id = EXCLUDED.sync_run_id,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query,
		stat.EmployeeCode, stat.DepartmentCode, stat.Date, stat.ShiftCode, stat.BaseCode,
		stat.StandardMinutes, stat.OvertimeMinutes, stat.TotalMinutes,
		stat.IsLeave, stat.LeaveKind, stat.IsRShift, stat.IsNationalHoliday, stat.SyncRunID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert daily shift stat for %s on %s: %w",
			stat.EmployeeCode, stat.Date.Format(time.DateOnly), err)
	}
	return nil
}

// ListProcessedDates implements stats.DailyShiftStatRepository.
func (r *dailyShiftStatRepositoryImpl) ListProcessedDates(ctx context.Context, departmentCode string, from, to time.Time) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT shift_date
		FROM daily_shift_stats
		WHERE department_code = $1 AND shift_date BETWEEN $2 AND $3
		ORDER BY shift_date
	`

	rows, err := q.Query(ctx, query, departmentCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list processed dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return dates, nil
}
