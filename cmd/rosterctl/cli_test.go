package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetContext(context.Background())
	return cmd, out
}

func writeGrid(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"員工編號", "姓名", "1", "2", "3"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"E001", "Alice", "0800A(+4)", "R(国)/0905G", "0800A"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"E002", "Bob", "(事)", "", "0905G"}))

	path := filepath.Join(t.TempDir(), "grid.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestClassifyCmd(t *testing.T) {
	path := writeGrid(t)
	classifyYear, classifyMonth = 2025, 1
	defer func() { classifyYear, classifyMonth = 0, 0 }()

	cmd, out := newTestCmd()
	require.NoError(t, runClassify(cmd, []string{path}))

	var summary struct {
		Year    int `json:"year"`
		Month   int `json:"month"`
		Summary struct {
			TotalEmployees          int    `json:"total_employees"`
			FullAttendanceEmployees int    `json:"full_attendance_employees"`
			OvertimeHours           int    `json:"overtime_hours"`
			OvertimePoints          string `json:"overtime_points"`
			RShiftCount             int    `json:"r_shift_count"`
			NationalHolidayCount    int    `json:"national_holiday_count"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	assert.Equal(t, 2025, summary.Year)
	assert.Equal(t, 1, summary.Month)
	assert.Equal(t, 2, summary.Summary.TotalEmployees)
	assert.Equal(t, 1, summary.Summary.FullAttendanceEmployees)
	assert.Equal(t, 4, summary.Summary.OvertimeHours)
	assert.Equal(t, "2", summary.Summary.OvertimePoints)
	assert.Equal(t, 1, summary.Summary.RShiftCount)
	assert.Equal(t, 1, summary.Summary.NationalHolidayCount)
}

func TestClassifyCmd_PeriodRequired(t *testing.T) {
	path := writeGrid(t)

	cmd, _ := newTestCmd()
	err := runClassify(cmd, []string{path})
	assert.Error(t, err)
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "roster.db"))
	t.Setenv("JWT_SECRET_KEY", "cli-test-secret")
	tokenSubject, tokenAdmin = "payroll-system", true
	defer func() { tokenSubject, tokenAdmin = "", false }()

	cmd, out := newTestCmd()
	require.NoError(t, runToken(cmd, nil))

	var issued struct {
		AccessToken string `json:"access_token"`
		IsAdmin     bool   `json:"is_admin"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &issued))
	assert.True(t, issued.IsAdmin)

	token, err := jwtauth.VerifyToken(jwt.NewJWTService("cli-test-secret", "1h").JWTAuth(), issued.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "payroll-system", token.Subject())
}

func TestParseRange(t *testing.T) {
	from, to, err := parseRange("2025-03-01", "")
	require.NoError(t, err)
	assert.True(t, from.Equal(to))

	_, _, err = parseRange("2025-03-05", "2025-03-01")
	assert.Error(t, err)

	_, _, err = parseRange("2025/03/01", "2025-03-02")
	assert.Error(t, err)
}
