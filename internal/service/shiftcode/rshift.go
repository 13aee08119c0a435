package shiftcode

import (
	"regexp"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/shiftcode"
)

// rShiftPattern is anchored: "R", an optional "(國)" national-holiday marker captured
// in group 1, "/", then at least one trailing character. A national-holiday match is
// an R-shift match with group 1 present, so it can never hold on its own.
var rShiftPattern = regexp.MustCompile(`^[Rr](\([國国]\))?/.+$`)

type rShiftClassifier struct {
	pattern *regexp.Regexp
}

func NewRShiftClassifier() shiftcode.RShiftClassifier {
	return &rShiftClassifier{pattern: rShiftPattern}
}

// classify returns (isRShift, isNationalHoliday) for a raw cell.
func (c *rShiftClassifier) classify(cell string) (bool, bool) {
	normalized := Normalize(cell)
	if normalized == "" {
		return false, false
	}
	m := c.pattern.FindStringSubmatch(normalized)
	if m == nil {
		return false, false
	}
	return true, m[1] != ""
}

// IsRShift implements shiftcode.RShiftClassifier.
func (c *rShiftClassifier) IsRShift(cell string) bool {
	isR, _ := c.classify(cell)
	return isR
}

// IsNationalHoliday implements shiftcode.RShiftClassifier.
func (c *rShiftClassifier) IsNationalHoliday(cell string) bool {
	_, holiday := c.classify(cell)
	return holiday
}

// ClassifyEmployeeMonth implements shiftcode.RShiftClassifier.
// Days that are not real calendar dates are skipped without error.
func (c *rShiftClassifier) ClassifyEmployeeMonth(employeeID, employeeName string, cells []string, year int, month time.Month) shiftcode.RShiftResult {
	result := shiftcode.RShiftResult{
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		Records:      make([]shiftcode.RShiftRecord, 0),
	}

	for i, cell := range cells {
		date, ok := dateForDay(year, month, i+1)
		if !ok {
			continue
		}
		isR, holiday := c.classify(cell)
		if !isR {
			continue
		}
		result.Records = append(result.Records, shiftcode.RShiftRecord{
			EmployeeID:        employeeID,
			EmployeeName:      employeeName,
			Date:              date.Format(dateLayout),
			ShiftText:         Normalize(cell),
			IsNationalHoliday: holiday,
		})
		if holiday {
			result.NationalHolidayCount++
		}
	}
	result.RShiftCount = len(result.Records)

	return result
}

// ClassifyBatch implements shiftcode.RShiftClassifier.
func (c *rShiftClassifier) ClassifyBatch(employees []shiftcode.EmployeeMonthInput, year int, month time.Month) shiftcode.RShiftBatchResult {
	batch := shiftcode.RShiftBatchResult{
		Results: make([]shiftcode.RShiftResult, 0, len(employees)),
	}
	for _, emp := range employees {
		result := c.ClassifyEmployeeMonth(emp.EmployeeID, emp.EmployeeName, emp.Shifts, year, month)
		batch.TotalRShiftCount += result.RShiftCount
		batch.TotalNationalHolidayCount += result.NationalHolidayCount
		batch.Results = append(batch.Results, result)
	}
	batch.TotalEmployees = len(batch.Results)
	return batch
}
