package shiftcode

import (
	"strconv"

	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type MonthlyFactsRequest struct {
	Year      int                  `json:"year"`
	Month     int                  `json:"month"`
	Employees []EmployeeMonthInput `json:"employees"`
}

func (r *MonthlyFactsRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidYearMonth(r.Year, r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "year_month",
			Message: "year must be between 2000 and 2100 and month between 1 and 12",
		})
	}
	errs = append(errs, r.employeeErrors()...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateEmployees checks the employee rows only. Leave classification works on
// day positions, so the period is not required.
func (r *MonthlyFactsRequest) ValidateEmployees() error {
	if errs := r.employeeErrors(); len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *MonthlyFactsRequest) employeeErrors() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if len(r.Employees) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employees",
			Message: "at least one employee is required",
		})
	}
	for i, emp := range r.Employees {
		if validator.IsEmpty(emp.EmployeeID) {
			errs = append(errs, validator.ValidationError{
				Field:   "employees[" + strconv.Itoa(i) + "].employee_id",
				Message: "employee_id is required",
			})
		}
	}

	return errs
}

// ==================== LEAVE ====================

type LeaveResult struct {
	EmployeeID       string `json:"employee_id"`
	EmployeeName     string `json:"employee_name"`
	IsFullAttendance bool   `json:"is_full_attendance"`
	LeaveDays        []int  `json:"leave_days"`
	LeaveCount       int    `json:"leave_count"`
}

type LeaveBatchResult struct {
	Results             []LeaveResult `json:"results"`
	TotalEmployees      int           `json:"total_employees"`
	FullAttendanceCount int           `json:"full_attendance_count"`
}

// ==================== OVERTIME ====================

type OvertimeRecord struct {
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   string          `json:"employee_name"`
	Date           string          `json:"date"` // YYYY-MM-DD
	ShiftText      string          `json:"shift_text"`
	OvertimeHours  int             `json:"overtime_hours"`
	AssessmentCode string          `json:"assessment_code"`
	Points         decimal.Decimal `json:"points"`
}

type OvertimeResult struct {
	EmployeeID         string           `json:"employee_id"`
	EmployeeName       string           `json:"employee_name"`
	Records            []OvertimeRecord `json:"records"`
	TotalOvertimeHours int              `json:"total_overtime_hours"`
	OvertimeDays       int              `json:"overtime_days"`
	TotalPoints        decimal.Decimal  `json:"total_points"`
}

type OvertimeBatchResult struct {
	Results            []OvertimeResult `json:"results"`
	TotalEmployees     int              `json:"total_employees"`
	TotalOvertimeDays  int              `json:"total_overtime_days"`
	TotalOvertimeHours int              `json:"total_overtime_hours"`
	TotalPoints        decimal.Decimal  `json:"total_points"`
}

// ==================== R-SHIFT ====================

type RShiftRecord struct {
	EmployeeID        string `json:"employee_id"`
	EmployeeName      string `json:"employee_name"`
	Date              string `json:"date"` // YYYY-MM-DD
	ShiftText         string `json:"shift_text"`
	IsNationalHoliday bool   `json:"is_national_holiday"`
}

type RShiftResult struct {
	EmployeeID           string         `json:"employee_id"`
	EmployeeName         string         `json:"employee_name"`
	Records              []RShiftRecord `json:"records"`
	RShiftCount          int            `json:"r_shift_count"`
	NationalHolidayCount int            `json:"national_holiday_count"`
}

type RShiftBatchResult struct {
	Results                   []RShiftResult `json:"results"`
	TotalEmployees            int            `json:"total_employees"`
	TotalRShiftCount          int            `json:"total_r_shift_count"`
	TotalNationalHolidayCount int            `json:"total_national_holiday_count"`
}

// ==================== SUMMARY ====================

type SummaryCounters struct {
	TotalEmployees          int             `json:"total_employees"`
	FullAttendanceEmployees int             `json:"full_attendance_employees"`
	OvertimeDays            int             `json:"overtime_days"`
	OvertimeHours           int             `json:"overtime_hours"`
	OvertimePoints          decimal.Decimal `json:"overtime_points"`
	RShiftCount             int             `json:"r_shift_count"`
	NationalHolidayCount    int             `json:"national_holiday_count"`
}

type MonthlySummary struct {
	Year     int                 `json:"year"`
	Month    int                 `json:"month"`
	Leave    LeaveBatchResult    `json:"leave"`
	Overtime OvertimeBatchResult `json:"overtime"`
	RShift   RShiftBatchResult   `json:"r_shift"`
	Summary  SummaryCounters     `json:"summary"`
}
