package shiftcode

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/shiftcode"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/grid"
)

// GridReader turns an uploaded workbook into employee rows.
type GridReader interface {
	Parse(r io.Reader) (grid.Sheet, error)
}

type factsServiceImpl struct {
	aggregator *Aggregator
	gridReader GridReader
}

func NewFactsService(aggregator *Aggregator, gridReader GridReader) shiftcode.FactsService {
	return &factsServiceImpl{
		aggregator: aggregator,
		gridReader: gridReader,
	}
}

// Leave implements shiftcode.FactsService.
func (s *factsServiceImpl) Leave(ctx context.Context, req shiftcode.MonthlyFactsRequest) (shiftcode.LeaveBatchResult, error) {
	if err := req.ValidateEmployees(); err != nil {
		return shiftcode.LeaveBatchResult{}, err
	}
	return s.aggregator.Leave(req.Employees), nil
}

// Overtime implements shiftcode.FactsService.
func (s *factsServiceImpl) Overtime(ctx context.Context, req shiftcode.MonthlyFactsRequest) (shiftcode.OvertimeBatchResult, error) {
	if err := req.Validate(); err != nil {
		return shiftcode.OvertimeBatchResult{}, err
	}
	return s.aggregator.Overtime(req.Year, time.Month(req.Month), req.Employees), nil
}

// RShifts implements shiftcode.FactsService.
func (s *factsServiceImpl) RShifts(ctx context.Context, req shiftcode.MonthlyFactsRequest) (shiftcode.RShiftBatchResult, error) {
	if err := req.Validate(); err != nil {
		return shiftcode.RShiftBatchResult{}, err
	}
	return s.aggregator.RShifts(req.Year, time.Month(req.Month), req.Employees), nil
}

// Summary implements shiftcode.FactsService.
func (s *factsServiceImpl) Summary(ctx context.Context, req shiftcode.MonthlyFactsRequest) (shiftcode.MonthlySummary, error) {
	if err := req.Validate(); err != nil {
		return shiftcode.MonthlySummary{}, err
	}
	return s.aggregator.Aggregate(req.Year, time.Month(req.Month), req.Employees), nil
}

// ImportGrid implements shiftcode.FactsService.
func (s *factsServiceImpl) ImportGrid(ctx context.Context, r io.Reader, year, month int) (shiftcode.MonthlySummary, error) {
	sheet, err := s.gridReader.Parse(r)
	if err != nil {
		return shiftcode.MonthlySummary{}, err
	}

	if year == 0 || month == 0 {
		year, month = sheet.Year, sheet.Month
	}
	if year == 0 || month == 0 {
		return shiftcode.MonthlySummary{}, shiftcode.ErrGridPeriodUnknown
	}

	// Grids are often printed with 31 day columns; keep only the days this month has.
	days := daysIn(year, time.Month(month))
	for i := range sheet.Employees {
		if len(sheet.Employees[i].Shifts) > days {
			sheet.Employees[i].Shifts = sheet.Employees[i].Shifts[:days]
		}
	}

	slog.Info("Shift grid imported",
		"sheet", sheet.Name,
		"year", year,
		"month", month,
		"employees", len(sheet.Employees))

	return s.Summary(ctx, shiftcode.MonthlyFactsRequest{
		Year:      year,
		Month:     month,
		Employees: sheet.Employees,
	})
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
