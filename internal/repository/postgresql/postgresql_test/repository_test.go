package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/roster-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEmployeeRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	require.NoError(t, repo.Upsert(ctx, employee.Employee{ID: "e1", EmployeeCode: "A001", FullName: "Lin", DepartmentCode: "ER"}))
	require.NoError(t, repo.Upsert(ctx, employee.Employee{ID: "e2", EmployeeCode: "A002", DepartmentCode: "ICU"}))

	emp, err := repo.GetByEmployeeCode(ctx, "A001")
	require.NoError(t, err)
	assert.Equal(t, "e1", emp.ID)
	assert.Equal(t, employee.EmploymentStatusActive, emp.Status)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	departments, err := repo.ListDepartmentCodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ER", "ICU"}, departments)
}

func TestScheduleEntryRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewScheduleEntryRepository(setup.DB)

	written, err := repo.Upsert(ctx, []schedule.Entry{
		{EmployeeCode: "A001", DepartmentCode: "ER", Date: date("2025-03-01"), ShiftCode: "0905G"},
		{EmployeeCode: "A001", DepartmentCode: "ER", Date: date("2025-03-02"), ShiftCode: "R/0905G"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	_, err = repo.Upsert(ctx, []schedule.Entry{
		{EmployeeCode: "A001", DepartmentCode: "ER", Date: date("2025-03-02"), ShiftCode: "(假)"},
	})
	require.NoError(t, err)

	entry, err := repo.GetByKey(ctx, "A001", "ER", date("2025-03-02"))
	require.NoError(t, err)
	assert.Equal(t, "(假)", entry.ShiftCode)

	found, err := repo.GetByDates(ctx, "A001", "ER", []time.Time{date("2025-02-28"), date("2025-03-01"), date("2025-03-02")})
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, "0905G", found["2025-03-01"].ShiftCode)

	_, err = repo.GetByKey(ctx, "A001", "ICU", date("2025-03-02"))
	assert.ErrorIs(t, err, schedule.ErrEntryNotFound)
}

func TestShiftDurationAndStatRepositories(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	durations := postgresql.NewShiftDurationRepository(setup.DB)
	statRepo := postgresql.NewDailyShiftStatRepository(setup.DB)

	require.NoError(t, durations.Upsert(ctx, []stats.ShiftDuration{
		{DepartmentCode: stats.WildcardDepartment, ShiftCode: "0905G", StandardMinutes: 480},
		{DepartmentCode: "ER", ShiftCode: "0905G", StandardMinutes: 540},
	}))
	er, err := durations.GetByDepartment(ctx, "ER")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"0905G": 540}, er)

	runID := uuid.New()
	for _, d := range []string{"2025-03-03", "2025-03-01", "2025-03-03"} {
		require.NoError(t, statRepo.Upsert(ctx, stats.DailyShiftStat{
			EmployeeCode:   "A001",
			DepartmentCode: "ER",
			Date:           date(d),
			ShiftCode:      "0905G",
			BaseCode:       "0905G",
			SyncRunID:      runID,
		}))
	}
	dates, err := statRepo.ListProcessedDates(ctx, "ER", date("2025-03-01"), date("2025-03-31"))
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.True(t, dates[0].Equal(date("2025-03-01")))
}
