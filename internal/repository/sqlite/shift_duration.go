package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/database"
)

type shiftDurationRepositoryImpl struct {
	db *database.SQLiteDB
}

func NewShiftDurationRepository(db *database.SQLiteDB) stats.ShiftDurationRepository {
	return &shiftDurationRepositoryImpl{db: db}
}

// GetByDepartment implements stats.ShiftDurationRepository.
func (r *shiftDurationRepositoryImpl) GetByDepartment(ctx context.Context, departmentCode string) (map[string]int, error) {
	// Wildcard rows sort first so department rows overwrite them.
	rows, err := r.db.QueryContext(ctx, `
		SELECT shift_code, standard_minutes
		FROM shift_durations
		WHERE department_code = ? OR department_code = ?
		ORDER BY CASE WHEN department_code = ? THEN 0 ELSE 1 END
	`, departmentCode, stats.WildcardDepartment, stats.WildcardDepartment)
	if err != nil {
		return nil, fmt.Errorf("failed to load shift durations: %w", err)
	}
	defer rows.Close()

	durations := make(map[string]int)
	for rows.Next() {
		var code string
		var minutes int
		if err := rows.Scan(&code, &minutes); err != nil {
			return nil, err
		}
		durations[code] = minutes
	}
	return durations, rows.Err()
}

// Upsert implements stats.ShiftDurationRepository.
func (r *shiftDurationRepositoryImpl) Upsert(ctx context.Context, durations []stats.ShiftDuration) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, d := range durations {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO shift_durations (department_code, shift_code, standard_minutes)
				VALUES (?, ?, ?)
				ON CONFLICT (department_code, shift_code) DO UPDATE SET
					standard_minutes = excluded.standard_minutes
			`, d.DepartmentCode, d.ShiftCode, d.StandardMinutes)
			if err != nil {
				return fmt.Errorf("failed to upsert shift duration %s/%s: %w", d.DepartmentCode, d.ShiftCode, err)
			}
		}
		return nil
	})
}
