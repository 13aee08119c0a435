package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/roster-backend-go/internal/repository/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *database.SQLiteDB {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(context.Background(), db))
	return db
}

func date(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEmployeeRepository(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewEmployeeRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(ctx, employee.Employee{ID: "e1", EmployeeCode: "A001", FullName: "Lin", DepartmentCode: "ER"}))
	require.NoError(t, repo.Upsert(ctx, employee.Employee{ID: "e2", EmployeeCode: "A002", DepartmentCode: "ICU"}))
	require.NoError(t, repo.Upsert(ctx, employee.Employee{ID: "e3", EmployeeCode: "A003", DepartmentCode: "OR", Status: employee.EmploymentStatusResigned}))

	emp, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "A001", emp.EmployeeCode)
	assert.Equal(t, "ER", emp.DepartmentCode)
	assert.Equal(t, employee.EmploymentStatusActive, emp.Status)

	emp, err = repo.GetByEmployeeCode(ctx, "A002")
	require.NoError(t, err)
	assert.Equal(t, "e2", emp.ID)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	departments, err := repo.ListDepartmentCodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ER", "ICU"}, departments)

	// Department transfer is an update, not a new row.
	require.NoError(t, repo.Upsert(ctx, employee.Employee{ID: "e1", EmployeeCode: "A001", DepartmentCode: "ICU"}))
	emp, err = repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "ICU", emp.DepartmentCode)
}

func TestScheduleEntryRepository_UpsertAndRead(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewScheduleEntryRepository(newTestDB(t))

	written, err := repo.Upsert(ctx, []schedule.Entry{
		{EmployeeCode: "A001", DepartmentCode: "ER", Date: date("2025-03-01"), ShiftCode: "0905G"},
		{EmployeeCode: "A001", DepartmentCode: "ER", Date: date("2025-03-02"), ShiftCode: "R/0905G"},
		{EmployeeCode: "A001", DepartmentCode: "ICU", Date: date("2025-03-02"), ShiftCode: "0800A"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, written)

	entry, err := repo.GetByKey(ctx, "A001", "ER", date("2025-03-02"))
	require.NoError(t, err)
	assert.Equal(t, "R/0905G", entry.ShiftCode)
	assert.True(t, entry.Date.Equal(date("2025-03-02")))

	_, err = repo.GetByKey(ctx, "A001", "ER", date("2025-03-05"))
	assert.ErrorIs(t, err, schedule.ErrEntryNotFound)

	// Same key overwrites.
	written, err = repo.Upsert(ctx, []schedule.Entry{
		{EmployeeCode: "A001", DepartmentCode: "ER", Date: date("2025-03-02"), ShiftCode: "(假)"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	found, err := repo.GetByDates(ctx, "A001", "ER", []time.Time{date("2025-02-28"), date("2025-03-01"), date("2025-03-02")})
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, "0905G", found["2025-03-01"].ShiftCode)
	assert.Equal(t, "(假)", found["2025-03-02"].ShiftCode)
	_, ok := found["2025-02-28"]
	assert.False(t, ok)

	empty, err := repo.GetByDates(ctx, "A001", "ER", nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestShiftDurationRepository_DepartmentOverridesWildcard(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewShiftDurationRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(ctx, []stats.ShiftDuration{
		{DepartmentCode: stats.WildcardDepartment, ShiftCode: "0905G", StandardMinutes: 480},
		{DepartmentCode: stats.WildcardDepartment, ShiftCode: "0800H", StandardMinutes: 240},
		{DepartmentCode: "ER", ShiftCode: "0905G", StandardMinutes: 540},
	}))

	er, err := repo.GetByDepartment(ctx, "ER")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"0905G": 540, "0800H": 240}, er)

	icu, err := repo.GetByDepartment(ctx, "ICU")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"0905G": 480, "0800H": 240}, icu)
}

func TestDailyShiftStatRepository_ProcessedDates(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewDailyShiftStatRepository(newTestDB(t))
	runID := uuid.New()

	for _, d := range []string{"2025-03-01", "2025-03-03", "2025-03-03", "2025-04-01"} {
		require.NoError(t, repo.Upsert(ctx, stats.DailyShiftStat{
			EmployeeCode:   "A001",
			DepartmentCode: "ER",
			Date:           date(d),
			ShiftCode:      "0905G(+2)",
			BaseCode:       "0905G",
			TotalMinutes:   600,
			SyncRunID:      runID,
		}))
	}
	require.NoError(t, repo.Upsert(ctx, stats.DailyShiftStat{
		EmployeeCode: "B001", DepartmentCode: "ICU", Date: date("2025-03-02"), SyncRunID: runID,
	}))

	dates, err := repo.ListProcessedDates(ctx, "ER", date("2025-03-01"), date("2025-03-31"))
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.True(t, dates[0].Equal(date("2025-03-01")))
	assert.True(t, dates[1].Equal(date("2025-03-03")))
}
