package shiftcode

import (
	"github.com/shopspring/decimal"
)

// EmployeeMonthInput is one row of a monthly shift grid. Shifts[0] is day 1.
// A null cell decodes to the empty string.
type EmployeeMonthInput struct {
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	Shifts       []string `json:"shifts"`
}

// Assessment is the scoring entry for an overtime hour count.
type Assessment struct {
	Code   string
	Points decimal.Decimal
}

// AssessmentTable maps overtime hours (1-4) to an assessment code and points.
type AssessmentTable struct {
	entries map[int]Assessment
}

func NewAssessmentTable(entries map[int]Assessment) AssessmentTable {
	copied := make(map[int]Assessment, len(entries))
	for hours, a := range entries {
		copied[hours] = a
	}
	return AssessmentTable{entries: copied}
}

// Lookup returns the entry for hours, falling back to the 1-hour entry.
func (t AssessmentTable) Lookup(hours int) Assessment {
	if a, ok := t.entries[hours]; ok {
		return a
	}
	return t.entries[1]
}

func (t AssessmentTable) Len() int {
	return len(t.entries)
}
