package fixtures

import (
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/shiftcode"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/stats"
	"github.com/shopspring/decimal"
)

// ==========================================
// ASSESSMENT TABLE
// ==========================================

// GetDefaultAssessments returns the overtime scoring used when no tables file is configured.
func GetDefaultAssessments() shiftcode.AssessmentTable {
	return shiftcode.NewAssessmentTable(map[int]shiftcode.Assessment{
		1: {Code: "+A03", Points: decimal.RequireFromString("0.5")},
		2: {Code: "+A04", Points: decimal.RequireFromString("1")},
		3: {Code: "+A05", Points: decimal.RequireFromString("1.5")},
		4: {Code: "+A06", Points: decimal.RequireFromString("2")},
	})
}

// ==========================================
// SHIFT DURATIONS
// ==========================================

// GetDefaultShiftDurations returns wildcard durations for the common shift codes.
// Codes follow HHMM of start plus a shift letter.
func GetDefaultShiftDurations() []stats.ShiftDuration {
	return []stats.ShiftDuration{
		{DepartmentCode: stats.WildcardDepartment, ShiftCode: "0700A", StandardMinutes: 480},
		{DepartmentCode: stats.WildcardDepartment, ShiftCode: "0800A", StandardMinutes: 480},
		{DepartmentCode: stats.WildcardDepartment, ShiftCode: "0905G", StandardMinutes: 480},
		{DepartmentCode: stats.WildcardDepartment, ShiftCode: "1300B", StandardMinutes: 480},
		{DepartmentCode: stats.WildcardDepartment, ShiftCode: "1500C", StandardMinutes: 480},
		{DepartmentCode: stats.WildcardDepartment, ShiftCode: "2300N", StandardMinutes: 480},
		{DepartmentCode: stats.WildcardDepartment, ShiftCode: "0800H", StandardMinutes: 240},
	}
}
