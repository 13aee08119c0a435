package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftDurationRepositoryImpl struct {
	db *database.DB
}

func NewShiftDurationRepository(db *database.DB) stats.ShiftDurationRepository {
	return &shiftDurationRepositoryImpl{db: db}
}

// GetByDepartment implements stats.ShiftDurationRepository.
func (r *shiftDurationRepositoryImpl) GetByDepartment(ctx context.Context, departmentCode string) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)

	// Wildcard rows sort first so department rows overwrite them.
	query := `
		SELECT department_code, shift_code, standard_minutes
		FROM shift_durations
		WHERE department_code = $1 OR department_code = $2
		ORDER BY (department_code = $2) DESC
	`

	rows, err := q.Query(ctx, query, departmentCode, stats.WildcardDepartment)
	if err != nil {
		return nil, fmt.Errorf("failed to load shift durations: %w", err)
	}
	defer rows.Close()

	durations := make(map[string]int)
	for rows.Next() {
		var d stats.ShiftDuration
		if err := rows.Scan(&d.DepartmentCode, &d.ShiftCode, &d.StandardMinutes); err != nil {
			return nil, err
		}
		durations[d.ShiftCode] = d.StandardMinutes
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return durations, nil
}

// Upsert implements stats.ShiftDurationRepository.
func (r *shiftDurationRepositoryImpl) Upsert(ctx context.Context, durations []stats.ShiftDuration) error {
	query := `
		INSERT INTO shift_durations (department_code, shift_code, standard_minutes)
		VALUES ($1, $2, $3)
		ON CONFLICT (department_code, shift_code) DO UPDATE SET
			standard_minutes = EXCLUDED.standard_minutes
	`

	return WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for _, d := range durations {
			if _, err := tx.Exec(ctx, query, d.DepartmentCode, d.ShiftCode, d.StandardMinutes); err != nil {
				return fmt.Errorf("failed to upsert shift duration %s/%s: %w", d.DepartmentCode, d.ShiftCode, err)
			}
		}
		return nil
	})
}
