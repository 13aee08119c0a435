package shiftcode

import (
	"regexp"
	"strconv"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/shiftcode"
	"github.com/shopspring/decimal"
)

// overtimePattern matches "(+N)" with a single digit N in 1..4 on normalized text.
var overtimePattern = regexp.MustCompile(`\(\+([1-4])\)`)

type overtimeClassifier struct {
	pattern     *regexp.Regexp
	assessments shiftcode.AssessmentTable
}

func NewOvertimeClassifier(assessments shiftcode.AssessmentTable) shiftcode.OvertimeClassifier {
	return &overtimeClassifier{
		pattern:     overtimePattern,
		assessments: assessments,
	}
}

// ExtractOvertimeHours implements shiftcode.OvertimeClassifier.
func (c *overtimeClassifier) ExtractOvertimeHours(cell string) (int, bool) {
	normalized := Normalize(cell)
	if normalized == "" {
		return 0, false
	}
	m := c.pattern.FindStringSubmatch(normalized)
	if m == nil {
		return 0, false
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return hours, true
}

// StripOvertimeMarker removes the first overtime marker, leaving the base shift code.
func StripOvertimeMarker(normalized string) string {
	loc := overtimePattern.FindStringIndex(normalized)
	if loc == nil {
		return normalized
	}
	return normalized[:loc[0]] + normalized[loc[1]:]
}

// Assessment implements shiftcode.OvertimeClassifier.
func (c *overtimeClassifier) Assessment(hours int) shiftcode.Assessment {
	return c.assessments.Lookup(hours)
}

// ClassifySingle implements shiftcode.OvertimeClassifier.
func (c *overtimeClassifier) ClassifySingle(cell, employeeID, employeeName string, date time.Time) (shiftcode.OvertimeRecord, bool) {
	hours, ok := c.ExtractOvertimeHours(cell)
	if !ok {
		return shiftcode.OvertimeRecord{}, false
	}
	assessment := c.assessments.Lookup(hours)

	return shiftcode.OvertimeRecord{
		EmployeeID:     employeeID,
		EmployeeName:   employeeName,
		Date:           date.Format(dateLayout),
		ShiftText:      Normalize(cell),
		OvertimeHours:  hours,
		AssessmentCode: assessment.Code,
		Points:         assessment.Points,
	}, true
}

// ClassifyEmployeeMonth implements shiftcode.OvertimeClassifier.
// Days that are not real calendar dates are skipped without error.
func (c *overtimeClassifier) ClassifyEmployeeMonth(employeeID, employeeName string, cells []string, year int, month time.Month) shiftcode.OvertimeResult {
	result := shiftcode.OvertimeResult{
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		Records:      make([]shiftcode.OvertimeRecord, 0),
		TotalPoints:  decimal.Zero,
	}

	for i, cell := range cells {
		date, ok := dateForDay(year, month, i+1)
		if !ok {
			continue
		}
		record, ok := c.ClassifySingle(cell, employeeID, employeeName, date)
		if !ok {
			continue
		}
		result.Records = append(result.Records, record)
		result.TotalOvertimeHours += record.OvertimeHours
		result.TotalPoints = result.TotalPoints.Add(record.Points)
	}
	result.OvertimeDays = len(result.Records)

	return result
}

// ClassifyBatch implements shiftcode.OvertimeClassifier.
func (c *overtimeClassifier) ClassifyBatch(employees []shiftcode.EmployeeMonthInput, year int, month time.Month) shiftcode.OvertimeBatchResult {
	batch := shiftcode.OvertimeBatchResult{
		Results:     make([]shiftcode.OvertimeResult, 0, len(employees)),
		TotalPoints: decimal.Zero,
	}
	for _, emp := range employees {
		result := c.ClassifyEmployeeMonth(emp.EmployeeID, emp.EmployeeName, emp.Shifts, year, month)
		batch.TotalOvertimeDays += result.OvertimeDays
		batch.TotalOvertimeHours += result.TotalOvertimeHours
		batch.TotalPoints = batch.TotalPoints.Add(result.TotalPoints)
		batch.Results = append(batch.Results, result)
	}
	batch.TotalEmployees = len(batch.Results)
	return batch
}
