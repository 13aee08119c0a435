package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/database"
)

type scheduleEntryRepositoryImpl struct {
	db *database.SQLiteDB
}

func NewScheduleEntryRepository(db *database.SQLiteDB) schedule.EntryRepository {
	return &scheduleEntryRepositoryImpl{db: db}
}

func scanEntry(scan func(dest ...any) error) (schedule.Entry, error) {
	var entry schedule.Entry
	var date, updatedAt string
	if err := scan(&entry.EmployeeCode, &entry.DepartmentCode, &date, &entry.ShiftCode, &updatedAt); err != nil {
		return schedule.Entry{}, err
	}
	d, err := parseDate(date)
	if err != nil {
		return schedule.Entry{}, fmt.Errorf("invalid stored date %q: %w", date, err)
	}
	entry.Date = d
	entry.UpdatedAt = parseTimestamp(updatedAt)
	return entry, nil
}

// GetByKey implements schedule.EntryRepository.
func (r *scheduleEntryRepositoryImpl) GetByKey(ctx context.Context, employeeCode, departmentCode string, date time.Time) (schedule.Entry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT employee_code, department_code, shift_date, shift_code, updated_at
		FROM schedule_entries
		WHERE employee_code = ? AND department_code = ? AND shift_date = ?
	`, employeeCode, departmentCode, formatDate(date))

	entry, err := scanEntry(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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

	args := []any{employeeCode, departmentCode}
	placeholders := make([]string, 0, len(dates))
	for _, d := range dates {
		placeholders = append(placeholders, "?")
		args = append(args, formatDate(d))
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT employee_code, department_code, shift_date, shift_code, updated_at
		FROM schedule_entries
		WHERE employee_code = ? AND department_code = ? AND shift_date IN (`+strings.Join(placeholders, ", ")+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		result[formatDate(entry.Date)] = entry
	}
	return result, rows.Err()
}

// Upsert implements schedule.EntryRepository.
func (r *scheduleEntryRepositoryImpl) Upsert(ctx context.Context, entries []schedule.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	written := 0
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		now := formatTimestamp(time.Now())
		for _, entry := range entries {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO schedule_entries (employee_code, department_code, shift_date, shift_code, updated_at)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT (employee_code, department_code, shift_date) DO UPDATE SET
					shift_code = excluded.shift_code,
					updated_at = excluded.updated_at
			`, entry.EmployeeCode, entry.DepartmentCode, formatDate(entry.Date), entry.ShiftCode, now)
			if err != nil {
				return fmt.Errorf("failed to upsert schedule entry %s/%s/%s: %w",
					entry.DepartmentCode, entry.EmployeeCode, formatDate(entry.Date), err)
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
