package grid

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/shiftcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseRows(t *testing.T) {
	rows := [][]string{
		{"", "2025-03 Roster"},
		{"Employee ID", " Name ", "1日", "2日", "3日"},
		{"E001", "Alice", "0800A", "", "R/0905G"},
		{"", "blank id is skipped"},
		{"E002", "Bob", "（假）"},
	}

	sheet, err := parseRows("March", rows)
	require.NoError(t, err)
	assert.Equal(t, 2025, sheet.Year)
	assert.Equal(t, 3, sheet.Month)
	require.Len(t, sheet.Employees, 2)
	assert.Equal(t, shiftcode.EmployeeMonthInput{
		EmployeeID:   "E001",
		EmployeeName: "Alice",
		Shifts:       []string{"0800A", "", "R/0905G"},
	}, sheet.Employees[0])
	assert.Equal(t, []string{"（假）", "", ""}, sheet.Employees[1].Shifts)
}

func TestParseRows_PeriodFromSheetName(t *testing.T) {
	rows := [][]string{
		{"工號", "1", "2"},
		{"A001", "0905G", "0905G"},
	}

	sheet, err := parseRows("2024年12月", rows)
	require.NoError(t, err)
	assert.Equal(t, 2024, sheet.Year)
	assert.Equal(t, 12, sheet.Month)
	assert.Equal(t, "", sheet.Employees[0].EmployeeName)
}

func TestParseRows_Errors(t *testing.T) {
	_, err := parseRows("Sheet1", [][]string{{"foo", "bar"}, {"1", "2"}})
	assert.ErrorIs(t, err, shiftcode.ErrGridHeaderNotFound)

	_, err = parseRows("Sheet1", [][]string{{"員工編號", "1"}})
	assert.ErrorIs(t, err, shiftcode.ErrEmptyGrid)
}

func TestParser_Parse(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"員工編號", "姓名", 1, 2}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"E001", "Alice", "0800A(+2)", "R(國)/0905G"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	parsed, err := NewParser().Parse(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, parsed.Employees, 1)
	assert.Equal(t, []string{"0800A(+2)", "R(國)/0905G"}, parsed.Employees[0].Shifts)
	assert.Zero(t, parsed.Year)
}

func TestParser_ParseRejectsNonWorkbook(t *testing.T) {
	_, err := NewParser().Parse(strings.NewReader("employee_id,1,2\nE001,0800A,0800A\n"))
	assert.Error(t, err)
}
