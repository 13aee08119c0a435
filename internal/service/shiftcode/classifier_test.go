package shiftcode

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/shiftcode"
	"github.com/cmlabs-hris/roster-backend-go/internal/fixtures"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"0905G", "0905G"},
		{" 0905G ( +2 ) ", "0905G(+2)"},
		{"（假）", "(假)"},
		{"0905G（＋３）", "0905G(+3)"},
		{"Ｒ（國）／0905G", "R(國)/0905G"},
		{"0800A　(病)", "0800A(病)"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
			assert.Equal(t, Normalize(tt.in), Normalize(Normalize(tt.in)))
		})
	}
}

func TestConcreteCells(t *testing.T) {
	leave := NewLeaveClassifier()
	overtime := NewOvertimeClassifier(fixtures.GetDefaultAssessments())
	rShift := NewRShiftClassifier()

	assert.True(t, rShift.IsRShift("R(國)/0905G"))
	assert.True(t, rShift.IsNationalHoliday("R(國)/0905G"))
	assert.True(t, rShift.IsRShift("R/0905G"))
	assert.False(t, rShift.IsNationalHoliday("R/0905G"))
	assert.True(t, leave.HasLeaveMarker("（假）"))

	hours, ok := overtime.ExtractOvertimeHours("0905G(+2)")
	require.True(t, ok)
	assert.Equal(t, 2, hours)

	assert.False(t, leave.HasLeaveMarker("0905G"))
	_, ok = overtime.ExtractOvertimeHours("0905G")
	assert.False(t, ok)
	assert.False(t, rShift.IsRShift("0905G"))
}

func TestLeaveClassifier_WidthVariants(t *testing.T) {
	c := NewLeaveClassifier()

	markers := []string{"假", "特休", "特", "公假", "公", "婚假", "喪", "病假", "病", "事", "育嬰假", "產", "公傷"}
	for _, m := range markers {
		half := "0800A(" + m + ")"
		full := "0800A（" + m + "）"
		assert.True(t, c.HasLeaveMarker(half), half)
		assert.Equal(t, c.HasLeaveMarker(half), c.HasLeaveMarker(full), full)
	}

	assert.False(t, c.HasLeaveMarker("假"))
	assert.False(t, c.HasLeaveMarker("(休)"))
	assert.False(t, c.HasLeaveMarker("(+2)"))
	assert.False(t, c.HasLeaveMarker(""))
}

func TestLeaveClassifier_LeaveKind(t *testing.T) {
	c := NewLeaveClassifier()

	kind, ok := c.LeaveKind("0800A（病假）")
	require.True(t, ok)
	assert.Equal(t, "sick", kind)

	kind, ok = c.LeaveKind("(公傷)")
	require.True(t, ok)
	assert.Equal(t, "injury", kind)

	kind, ok = c.LeaveKind("(特)")
	require.True(t, ok)
	assert.Equal(t, "special", kind)

	_, ok = c.LeaveKind("0800A")
	assert.False(t, ok)
}

func TestLeaveClassifier_ClassifyEmployeeMonth(t *testing.T) {
	c := NewLeaveClassifier()

	full := c.ClassifyEmployeeMonth("E001", "Alice", []string{"0800A", "", "R/0905G", "0905G(+2)"})
	assert.True(t, full.IsFullAttendance)
	assert.Empty(t, full.LeaveDays)
	assert.NotNil(t, full.LeaveDays)

	one := c.ClassifyEmployeeMonth("E001", "Alice", []string{"0800A", "", "（事）", "0905G(+2)"})
	assert.False(t, one.IsFullAttendance)
	assert.Equal(t, []int{3}, one.LeaveDays)
	assert.Equal(t, 1, one.LeaveCount)
}

func TestOvertimeClassifier_ExtractOvertimeHours(t *testing.T) {
	c := NewOvertimeClassifier(fixtures.GetDefaultAssessments())

	for n := 1; n <= 4; n++ {
		hours, ok := c.ExtractOvertimeHours("0800A(+" + string(rune('0'+n)) + ")")
		require.True(t, ok)
		assert.Equal(t, n, hours)
	}

	rejects := []string{"0800A(+5)", "0800A(+0)", "0800A(+)", "0800A+2", "0800A(2)", "0800A(+2", "0800A(+12)"}
	for _, cell := range rejects {
		_, ok := c.ExtractOvertimeHours(cell)
		assert.False(t, ok, cell)
	}

	hours, ok := c.ExtractOvertimeHours("0800A（＋３）")
	require.True(t, ok)
	assert.Equal(t, 3, hours)

	hours, ok = c.ExtractOvertimeHours("0800A(+1)(+4)")
	require.True(t, ok)
	assert.Equal(t, 1, hours)
}

func TestOvertimeClassifier_AssessmentTable(t *testing.T) {
	c := NewOvertimeClassifier(fixtures.GetDefaultAssessments())

	record, ok := c.ClassifySingle("0905G(+3)", "E001", "Alice", time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "2025-03-04", record.Date)
	assert.Equal(t, "+A05", record.AssessmentCode)
	assert.True(t, record.Points.Equal(decimal.RequireFromString("1.5")))

	assert.Equal(t, "+A03", c.Assessment(1).Code)
	assert.Equal(t, "+A03", c.Assessment(9).Code)
}

func TestOvertimeClassifier_TotalsMatchRecords(t *testing.T) {
	c := NewOvertimeClassifier(fixtures.GetDefaultAssessments())
	cells := []string{"0800A(+1)", "", "0800A(+4)", "(假)", "0905G（＋２）", "0905G(+5)", "R/0800A(+3)"}

	result := c.ClassifyEmployeeMonth("E001", "Alice", cells, 2025, time.March)

	sum := 0
	points := decimal.Zero
	for _, r := range result.Records {
		sum += r.OvertimeHours
		points = points.Add(r.Points)
	}
	assert.Equal(t, sum, result.TotalOvertimeHours)
	assert.Equal(t, 10, result.TotalOvertimeHours)
	assert.Equal(t, 4, result.OvertimeDays)
	assert.True(t, points.Equal(result.TotalPoints))
	assert.True(t, result.TotalPoints.Equal(decimal.NewFromInt(5)))
}

func TestOvertimeAndRShift_SkipInvalidCalendarDays(t *testing.T) {
	overtime := NewOvertimeClassifier(fixtures.GetDefaultAssessments())
	rShift := NewRShiftClassifier()

	cells := make([]string, 31)
	for i := range cells {
		cells[i] = "R/0800A(+2)"
	}

	ot := overtime.ClassifyEmployeeMonth("E001", "Alice", cells, 2025, time.February)
	assert.Equal(t, 28, ot.OvertimeDays)
	assert.Equal(t, "2025-02-28", ot.Records[len(ot.Records)-1].Date)

	rs := rShift.ClassifyEmployeeMonth("E001", "Alice", cells, 2024, time.February)
	assert.Equal(t, 29, rs.RShiftCount)
	assert.Equal(t, "2024-02-29", rs.Records[len(rs.Records)-1].Date)
	for _, r := range rs.Records {
		assert.NotEqual(t, "2024-02-30", r.Date)
	}
}

func TestRShiftClassifier_HolidayIsSubsetOfRShift(t *testing.T) {
	c := NewRShiftClassifier()
	cells := []string{
		"R/0905G", "R(國)/0905G", "R(国)/0800A", "r/0800A", "Ｒ（國）／0905G",
		"(國)/0905G", "R(國)", "R(國)/", "R/", "0905G", "XR/0905G", "R(假)/0800A", "",
	}
	for _, cell := range cells {
		if c.IsNationalHoliday(cell) {
			assert.True(t, c.IsRShift(cell), cell)
		}
	}

	assert.True(t, c.IsNationalHoliday("Ｒ（國）／0905G"))
	assert.False(t, c.IsRShift("R(國)"))
	assert.False(t, c.IsRShift("R/"))
	assert.False(t, c.IsRShift("XR/0905G"))
}

func TestRShiftClassifier_ClassifyEmployeeMonth(t *testing.T) {
	c := NewRShiftClassifier()

	got := c.ClassifyEmployeeMonth("E002", "Bob", []string{"R/0905G", "0800A", "R(國)/0905G"}, 2025, time.May)

	want := shiftcode.RShiftResult{
		EmployeeID:   "E002",
		EmployeeName: "Bob",
		Records: []shiftcode.RShiftRecord{
			{EmployeeID: "E002", EmployeeName: "Bob", Date: "2025-05-01", ShiftText: "R/0905G"},
			{EmployeeID: "E002", EmployeeName: "Bob", Date: "2025-05-03", ShiftText: "R(國)/0905G", IsNationalHoliday: true},
		},
		RShiftCount:          2,
		NationalHolidayCount: 1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ClassifyEmployeeMonth mismatch (-want +got):\n%s", diff)
	}
}
