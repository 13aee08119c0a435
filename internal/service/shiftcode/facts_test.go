package shiftcode

import (
	"bytes"
	"context"
	"testing"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/shiftcode"
	"github.com/cmlabs-hris/roster-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/grid"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestFactsService() shiftcode.FactsService {
	aggregator := NewAggregator(
		NewLeaveClassifier(),
		NewOvertimeClassifier(fixtures.GetDefaultAssessments()),
		NewRShiftClassifier(),
	)
	return NewFactsService(aggregator, grid.NewParser())
}

func marchEmployees() []shiftcode.EmployeeMonthInput {
	return []shiftcode.EmployeeMonthInput{
		{EmployeeID: "E001", EmployeeName: "Alice", Shifts: []string{"0800A(+2)", "R(國)/0905G", "0800A"}},
		{EmployeeID: "E002", EmployeeName: "Bob", Shifts: []string{"（病）", "R/0905G", "0905G(+4)"}},
		{EmployeeID: "E003", EmployeeName: "Carol", Shifts: nil},
	}
}

func TestAggregator_Aggregate(t *testing.T) {
	svc := newTestFactsService()

	summary, err := svc.Summary(context.Background(), shiftcode.MonthlyFactsRequest{Year: 2025, Month: 3, Employees: marchEmployees()})
	require.NoError(t, err)

	assert.Equal(t, 2025, summary.Year)
	assert.Equal(t, 3, summary.Month)
	assert.Equal(t, shiftcode.SummaryCounters{
		TotalEmployees:          3,
		FullAttendanceEmployees: 2,
		OvertimeDays:            2,
		OvertimeHours:           6,
		OvertimePoints:          summary.Summary.OvertimePoints,
		RShiftCount:             2,
		NationalHolidayCount:    1,
	}, summary.Summary)
	assert.True(t, summary.Summary.OvertimePoints.Equal(decimal.NewFromInt(3)))

	require.Len(t, summary.Leave.Results, 3)
	assert.Equal(t, []int{1}, summary.Leave.Results[1].LeaveDays)
	assert.True(t, summary.Leave.Results[2].IsFullAttendance)
	assert.Equal(t, 3, summary.Overtime.TotalEmployees)
	assert.Equal(t, 3, summary.RShift.TotalEmployees)
}

func TestFactsService_Validation(t *testing.T) {
	svc := newTestFactsService()

	_, err := svc.Leave(context.Background(), shiftcode.MonthlyFactsRequest{Year: 2025, Month: 3})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "employees")

	_, err = svc.RShifts(context.Background(), shiftcode.MonthlyFactsRequest{Year: 2025, Month: 0, Employees: marchEmployees()})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "year_month")
}

func TestFactsService_LeaveWithoutPeriod(t *testing.T) {
	svc := newTestFactsService()

	result, err := svc.Leave(context.Background(), shiftcode.MonthlyFactsRequest{Employees: marchEmployees()})
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalEmployees)
	assert.Equal(t, 2, result.FullAttendanceCount)
	assert.Equal(t, []int{1}, result.Results[1].LeaveDays)

	_, err = svc.Leave(context.Background(), shiftcode.MonthlyFactsRequest{
		Employees: []shiftcode.EmployeeMonthInput{{EmployeeName: "Nobody"}},
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "employees[0].employee_id")
	assert.NotContains(t, verrs.ToMap(), "year_month")
}

func buildGrid(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestFactsService_ImportGrid(t *testing.T) {
	svc := newTestFactsService()

	header := []interface{}{"員工編號", "姓名"}
	alice := []interface{}{"E001", "Alice"}
	for day := 1; day <= 31; day++ {
		header = append(header, day)
		alice = append(alice, "0800A(+1)")
	}

	t.Run("period from title and month trimmed", func(t *testing.T) {
		buf := buildGrid(t, [][]interface{}{{"2025年2月班表"}, header, alice})

		summary, err := svc.ImportGrid(context.Background(), buf, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, summary.Month)
		assert.Equal(t, 28, summary.Summary.OvertimeDays)
		assert.Equal(t, 28, summary.Summary.OvertimeHours)
	})

	t.Run("explicit period overrides title", func(t *testing.T) {
		buf := buildGrid(t, [][]interface{}{{"2025年2月班表"}, header, alice})

		summary, err := svc.ImportGrid(context.Background(), buf, 2025, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, summary.Month)
		assert.Equal(t, 31, summary.Summary.OvertimeDays)
	})

	t.Run("unknown period", func(t *testing.T) {
		buf := buildGrid(t, [][]interface{}{header, alice})

		_, err := svc.ImportGrid(context.Background(), buf, 0, 0)
		assert.ErrorIs(t, err, shiftcode.ErrGridPeriodUnknown)
	})
}
