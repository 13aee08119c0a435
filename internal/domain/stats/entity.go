package stats

import (
	"time"

	"github.com/google/uuid"
)

// WildcardDepartment marks a shift duration that applies to every department
// without its own entry for that code.
const WildcardDepartment = "*"

// DailyShiftStat is the per-day fact row written by a sync run.
type DailyShiftStat struct {
	EmployeeCode      string
	DepartmentCode    string
	Date              time.Time
	ShiftCode         string
	BaseCode          string
	StandardMinutes   int
	OvertimeMinutes   int
	TotalMinutes      int
	IsLeave           bool
	LeaveKind         string
	IsRShift          bool
	IsNationalHoliday bool
	SyncRunID         uuid.UUID
	UpdatedAt         time.Time
}

type ShiftDuration struct {
	DepartmentCode  string
	ShiftCode       string
	StandardMinutes int
}
