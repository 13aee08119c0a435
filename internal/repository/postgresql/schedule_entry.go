package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type scheduleEntryRepositoryImpl struct {
	db *database.DB
}

func NewScheduleEntryRepository(db *database.DB) schedule.EntryRepository {
	return &scheduleEntryRepositoryImpl{db: db}
}

// GetByKey implements schedule.EntryRepository.
func (r *scheduleEntryRepositoryImpl) GetByKey(ctx context.Context, employeeCode, departmentCode string, date time.Time) (schedule.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_code, department_code, shift_date, shift_code, updated_at
		FROM schedule_entries
		WHERE employee_code = $1 AND department_code = $2 AND shift_date = $3
	`

	var entry schedule.Entry
	err := q.QueryRow(ctx, query, employeeCode, departmentCode, date).Scan(
		&entry.EmployeeCode, &entry.DepartmentCode, &entry.Date, &entry.ShiftCode, &entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Entry{}, schedule.ErrEntryNotFound
		}
		return schedule.Entry{}, fmt.Errorf("failed to get schedule entry: %w", err)
	}
	return entry, nil
}

// GetByDates implements schedule.EntryRepository.
func (r *scheduleEntryRepositoryImpl) GetByDates(ctx context.Context, employeeCode, departmentCode string, dates []time.Time) (map[string]schedule.Entry, error) {
	result := make(map[string]schedule.Entry, len(dates))
	if len(dates) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_code, department_code, shift_date, shift_code, updated_at
		FROM schedule_entries
		WHERE employee_code = $1 AND department_code = $2 AND shift_date = ANY($3::date[])
	`

	rows, err := q.Query(ctx, query, employeeCode, departmentCode, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry schedule.Entry
		if err := rows.Scan(&entry.EmployeeCode, &entry.DepartmentCode, &entry.Date, &entry.ShiftCode, &entry.UpdatedAt); err != nil {
			return nil, err
		}
		result[entry.Date.Format(time.DateOnly)] = entry
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Upsert implements schedule.EntryRepository.
func (r *scheduleEntryRepositoryImpl) Upsert(ctx context.Context, entries []schedule.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO schedule_entries (employee_code, department_code, shift_date, shift_code)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_code, department_code, shift_date) DO UPDATE SET
			shift_code = EXCLUDED.shift_code,
			updated_at = NOW()
	`

	written := 0
	err := WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for _, entry := range entries {
			if _, err := tx.Exec(ctx, query, entry.EmployeeCode, entry.DepartmentCode, entry.Date, entry.ShiftCode); err != nil {
				return fmt.Errorf("failed to upsert schedule entry %s/%s/%s: %w",
					entry.DepartmentCode, entry.EmployeeCode, entry.Date.Format(time.DateOnly), err)
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}
