package validator

import (
	"regexp"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// IsValidYearMonth accepts years 2000..2100 and months 1..12.
func IsValidYearMonth(year, month int) bool {
	return year >= 2000 && year <= 2100 && month >= 1 && month <= 12
}

// IsValidDateRange parses both ends and reports whether from <= to.
func IsValidDateRange(fromStr, toStr string) (from, to time.Time, ok bool) {
	from, okFrom := IsValidDate(fromStr)
	to, okTo := IsValidDate(toStr)
	if !okFrom || !okTo {
		return time.Time{}, time.Time{}, false
	}
	return from, to, !to.Before(from)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// Department codes: 1-20 chars, A-Z, a-z, 0-9, _, -
var departmentCodeRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,20}$`)

func IsValidDepartmentCode(code string) bool {
	return departmentCodeRegex.MatchString(code)
}
