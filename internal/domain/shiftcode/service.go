package shiftcode

import (
	"context"
	"io"
	"time"
)

type LeaveClassifier interface {
	HasLeaveMarker(cell string) bool
	// LeaveKind reports which leave type the cell carries, e.g. "sick".
	LeaveKind(cell string) (string, bool)
	ClassifyEmployeeMonth(employeeID, employeeName string, cells []string) LeaveResult
	ClassifyBatch(employees []EmployeeMonthInput) LeaveBatchResult
}

type OvertimeClassifier interface {
	ExtractOvertimeHours(cell string) (int, bool)
	ClassifySingle(cell, employeeID, employeeName string, date time.Time) (OvertimeRecord, bool)
	ClassifyEmployeeMonth(employeeID, employeeName string, cells []string, year int, month time.Month) OvertimeResult
	ClassifyBatch(employees []EmployeeMonthInput, year int, month time.Month) OvertimeBatchResult
	Assessment(hours int) Assessment
}

type RShiftClassifier interface {
	IsRShift(cell string) bool
	IsNationalHoliday(cell string) bool
	ClassifyEmployeeMonth(employeeID, employeeName string, cells []string, year int, month time.Month) RShiftResult
	ClassifyBatch(employees []EmployeeMonthInput, year int, month time.Month) RShiftBatchResult
}

// FactsService is the request-facing entry point for monthly attendance facts.
type FactsService interface {
	Leave(ctx context.Context, req MonthlyFactsRequest) (LeaveBatchResult, error)
	Overtime(ctx context.Context, req MonthlyFactsRequest) (OvertimeBatchResult, error)
	RShifts(ctx context.Context, req MonthlyFactsRequest) (RShiftBatchResult, error)
	Summary(ctx context.Context, req MonthlyFactsRequest) (MonthlySummary, error)
	// ImportGrid reads an xlsx shift grid. Zero year/month means "read the period from the sheet".
	ImportGrid(ctx context.Context, r io.Reader, year, month int) (MonthlySummary, error)
}
