package shiftcode

import (
	"regexp"
	"strings"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/shiftcode"
)

// leaveMarkers lists the bracket contents that mark a leave day, grouped by leave type.
var leaveMarkers = []struct {
	kind    string
	markers []string
}{
	{kind: "leave", markers: []string{"假"}},
	{kind: "special", markers: []string{"特休", "特"}},
	{kind: "official", markers: []string{"公假", "公"}},
	{kind: "marriage", markers: []string{"婚假", "婚"}},
	{kind: "bereavement", markers: []string{"喪假", "喪"}},
	{kind: "sick", markers: []string{"病假", "病"}},
	{kind: "personal", markers: []string{"事假", "事"}},
	{kind: "parental", markers: []string{"育嬰假", "育嬰", "育"}},
	{kind: "maternity", markers: []string{"產假", "產"}},
	{kind: "injury", markers: []string{"公傷假", "公傷", "傷"}},
}

type leaveClassifier struct {
	pattern *regexp.Regexp
	kinds   map[string]string
}

func NewLeaveClassifier() shiftcode.LeaveClassifier {
	kinds := make(map[string]string)
	for _, group := range leaveMarkers {
		for _, marker := range group.markers {
			kinds[marker] = group.kind
		}
	}
	return &leaveClassifier{pattern: compileLeavePattern(), kinds: kinds}
}

// compileLeavePattern lists every marker in both half-width and full-width
// bracket form so the match set does not depend on normalization.
// Group 1 captures a half-width match, group 2 a full-width one.
func compileLeavePattern() *regexp.Regexp {
	var markers []string
	for _, group := range leaveMarkers {
		for _, marker := range group.markers {
			markers = append(markers, regexp.QuoteMeta(marker))
		}
	}
	alt := strings.Join(markers, "|")
	return regexp.MustCompile(`\((` + alt + `)\)|（(` + alt + `)）`)
}

// HasLeaveMarker implements shiftcode.LeaveClassifier.
func (c *leaveClassifier) HasLeaveMarker(cell string) bool {
	normalized := Normalize(cell)
	if normalized == "" {
		return false
	}
	return c.pattern.MatchString(normalized)
}

// LeaveKind implements shiftcode.LeaveClassifier.
func (c *leaveClassifier) LeaveKind(cell string) (string, bool) {
	normalized := Normalize(cell)
	if normalized == "" {
		return "", false
	}
	m := c.pattern.FindStringSubmatch(normalized)
	if m == nil {
		return "", false
	}
	marker := m[1]
	if marker == "" {
		marker = m[2]
	}
	return c.kinds[marker], true
}

// ClassifyEmployeeMonth implements shiftcode.LeaveClassifier.
// Day numbers are positions in cells (1-based), not calendar dates.
func (c *leaveClassifier) ClassifyEmployeeMonth(employeeID, employeeName string, cells []string) shiftcode.LeaveResult {
	leaveDays := make([]int, 0)
	for i, cell := range cells {
		if c.HasLeaveMarker(cell) {
			leaveDays = append(leaveDays, i+1)
		}
	}

	return shiftcode.LeaveResult{
		EmployeeID:       employeeID,
		EmployeeName:     employeeName,
		IsFullAttendance: len(leaveDays) == 0,
		LeaveDays:        leaveDays,
		LeaveCount:       len(leaveDays),
	}
}

// ClassifyBatch implements shiftcode.LeaveClassifier.
func (c *leaveClassifier) ClassifyBatch(employees []shiftcode.EmployeeMonthInput) shiftcode.LeaveBatchResult {
	batch := shiftcode.LeaveBatchResult{
		Results: make([]shiftcode.LeaveResult, 0, len(employees)),
	}
	for _, emp := range employees {
		result := c.ClassifyEmployeeMonth(emp.EmployeeID, emp.EmployeeName, emp.Shifts)
		if result.IsFullAttendance {
			batch.FullAttendanceCount++
		}
		batch.Results = append(batch.Results, result)
	}
	batch.TotalEmployees = len(batch.Results)
	return batch
}
