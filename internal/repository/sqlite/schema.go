package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id                TEXT PRIMARY KEY,
	employee_code     TEXT NOT NULL UNIQUE,
	full_name         TEXT NOT NULL DEFAULT '',
	department_code   TEXT NOT NULL,
	employment_status TEXT NOT NULL DEFAULT 'active',
	created_at        TEXT NOT NULL,
	updated_at        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_employees_department ON employees (department_code);

CREATE TABLE IF NOT EXISTS schedule_entries (
	employee_code   TEXT NOT NULL,
	department_code TEXT NOT NULL,
	shift_date      TEXT NOT NULL,
	shift_code      TEXT NOT NULL,
	updated_at      TEXT NOT NULL,
	PRIMARY KEY (employee_code, department_code, shift_date)
);

CREATE TABLE IF NOT EXISTS shift_durations (
	department_code  TEXT    NOT NULL,
	shift_code       TEXT    NOT NULL,
	standard_minutes INTEGER NOT NULL,
	PRIMARY KEY (department_code, shift_code)
);

CREATE TABLE IF NOT EXISTS daily_shift_stats (
	employee_code       TEXT    NOT NULL,
	department_code     TEXT    NOT NULL,
	shift_date          TEXT    NOT NULL,
	shift_code          TEXT    NOT NULL,
	base_code           TEXT    NOT NULL,
	standard_minutes    INTEGER NOT NULL DEFAULT 0,
	overtime_minutes    INTEGER NOT NULL DEFAULT 0,
	total_minutes       INTEGER NOT NULL DEFAULT 0,
	is_leave            INTEGER NOT NULL DEFAULT 0,
	leave_kind          TEXT    NOT NULL DEFAULT '',
	is_r_shift          INTEGER NOT NULL DEFAULT 0,
	is_national_holiday INTEGER NOT NULL DEFAULT 0,
	sync_run_id         TEXT    NOT NULL,
	updated_at          TEXT    NOT NULL,
	PRIMARY KEY (employee_code, department_code, shift_date)
);

CREATE INDEX IF NOT EXISTS idx_daily_shift_stats_department_date ON daily_shift_stats (department_code, shift_date);
`

// Migrate creates the roster tables if they do not exist.
func Migrate(ctx context.Context, db *database.SQLiteDB) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
	}
	return nil
}
