package config

import (
	"fmt"
	"os"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/shiftcode"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/roster-backend-go/internal/fixtures"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Tables holds the static scoring and duration tables.
type Tables struct {
	Assessments    shiftcode.AssessmentTable
	ShiftDurations []stats.ShiftDuration
}

type tablesFile struct {
	Assessments []struct {
		Hours  int    `yaml:"hours"`
		Code   string `yaml:"code"`
		Points string `yaml:"points"`
	} `yaml:"assessments"`
	ShiftDurations []struct {
		Department string `yaml:"department"`
		Code       string `yaml:"code"`
		Minutes    int    `yaml:"minutes"`
	} `yaml:"shift_durations"`
}

// LoadTables reads the YAML tables file. An empty path yields the built-in defaults;
// a file that omits a section keeps the default for that section.
func LoadTables(path string) (Tables, error) {
	tables := Tables{
		Assessments:    fixtures.GetDefaultAssessments(),
		ShiftDurations: fixtures.GetDefaultShiftDurations(),
	}
	if path == "" {
		return tables, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("failed to read tables file: %w", err)
	}
	return parseTables(raw, tables)
}

func parseTables(raw []byte, tables Tables) (Tables, error) {
	var file tablesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Tables{}, fmt.Errorf("failed to parse tables file: %w", err)
	}

	if len(file.Assessments) > 0 {
		entries := make(map[int]shiftcode.Assessment, len(file.Assessments))
		for _, a := range file.Assessments {
			if a.Hours < 1 || a.Hours > 4 {
				return Tables{}, fmt.Errorf("assessment hours must be between 1 and 4, got %d", a.Hours)
			}
			points, err := decimal.NewFromString(a.Points)
			if err != nil {
				return Tables{}, fmt.Errorf("invalid points %q for %d hours: %w", a.Points, a.Hours, err)
			}
			entries[a.Hours] = shiftcode.Assessment{Code: a.Code, Points: points}
		}
		if _, ok := entries[1]; !ok {
			return Tables{}, fmt.Errorf("assessment table must define an entry for 1 hour")
		}
		tables.Assessments = shiftcode.NewAssessmentTable(entries)
	}

	if len(file.ShiftDurations) > 0 {
		durations := make([]stats.ShiftDuration, 0, len(file.ShiftDurations))
		for _, d := range file.ShiftDurations {
			if d.Code == "" || d.Minutes < 0 {
				return Tables{}, fmt.Errorf("invalid shift duration entry for code %q", d.Code)
			}
			department := d.Department
			if department == "" {
				department = stats.WildcardDepartment
			}
			durations = append(durations, stats.ShiftDuration{
				DepartmentCode:  department,
				ShiftCode:       d.Code,
				StandardMinutes: d.Minutes,
			})
		}
		tables.ShiftDurations = durations
	}

	return tables, nil
}
