package shiftcode

import (
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/shiftcode"
)

// Aggregator runs every classifier over a month of employees and rolls up the counters.
// It holds no state beyond its classifiers and is safe for concurrent use.
type Aggregator struct {
	leave    shiftcode.LeaveClassifier
	overtime shiftcode.OvertimeClassifier
	rShift   shiftcode.RShiftClassifier
}

func NewAggregator(leave shiftcode.LeaveClassifier, overtime shiftcode.OvertimeClassifier, rShift shiftcode.RShiftClassifier) *Aggregator {
	return &Aggregator{
		leave:    leave,
		overtime: overtime,
		rShift:   rShift,
	}
}

func (a *Aggregator) Leave(employees []shiftcode.EmployeeMonthInput) shiftcode.LeaveBatchResult {
	return a.leave.ClassifyBatch(employees)
}

func (a *Aggregator) Overtime(year int, month time.Month, employees []shiftcode.EmployeeMonthInput) shiftcode.OvertimeBatchResult {
	return a.overtime.ClassifyBatch(employees, year, month)
}

func (a *Aggregator) RShifts(year int, month time.Month, employees []shiftcode.EmployeeMonthInput) shiftcode.RShiftBatchResult {
	return a.rShift.ClassifyBatch(employees, year, month)
}

// Aggregate produces the per-employee results of all three classifiers plus summary counters.
func (a *Aggregator) Aggregate(year int, month time.Month, employees []shiftcode.EmployeeMonthInput) shiftcode.MonthlySummary {
	leave := a.Leave(employees)
	overtime := a.Overtime(year, month, employees)
	rShift := a.RShifts(year, month, employees)

	return shiftcode.MonthlySummary{
		Year:     year,
		Month:    int(month),
		Leave:    leave,
		Overtime: overtime,
		RShift:   rShift,
		Summary: shiftcode.SummaryCounters{
			TotalEmployees:          len(employees),
			FullAttendanceEmployees: leave.FullAttendanceCount,
			OvertimeDays:            overtime.TotalOvertimeDays,
			OvertimeHours:           overtime.TotalOvertimeHours,
			OvertimePoints:          overtime.TotalPoints,
			RShiftCount:             rShift.TotalRShiftCount,
			NationalHolidayCount:    rShift.TotalNationalHolidayCount,
		},
	}
}
