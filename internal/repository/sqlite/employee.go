package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.SQLiteDB
}

func NewEmployeeRepository(db *database.SQLiteDB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, employee_code, full_name, department_code, employment_status, created_at, updated_at`

func (e *employeeRepositoryImpl) getOne(ctx context.Context, where string, arg string) (employee.Employee, error) {
	row := e.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE `+where+` = ?`, arg)

	var emp employee.Employee
	var status, createdAt, updatedAt string
	err := row.Scan(&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.DepartmentCode, &status, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.Employee{}, fmt.Errorf("employee %s %s: %w", where, arg, employee.ErrEmployeeNotFound)
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s %s: %w", where, arg, err)
	}
	emp.Status = employee.EmploymentStatus(status)
	emp.CreatedAt = parseTimestamp(createdAt)
	emp.UpdatedAt = parseTimestamp(updatedAt)
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return e.getOne(ctx, "id", id)
}

// GetByEmployeeCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmployeeCode(ctx context.Context, employeeCode string) (employee.Employee, error) {
	return e.getOne(ctx, "employee_code", employeeCode)
}

// ListDepartmentCodes implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListDepartmentCodes(ctx context.Context) ([]string, error) {
	rows, err := e.db.QueryContext(ctx, `
		SELECT DISTINCT department_code
		FROM employees
		WHERE employment_status = ?
		ORDER BY department_code
	`, string(employee.EmploymentStatusActive))
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		departments = append(departments, code)
	}
	return departments, rows.Err()
}

// Upsert implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Upsert(ctx context.Context, emp employee.Employee) error {
	status := emp.Status
	if status == "" {
		status = employee.EmploymentStatusActive
	}
	now := formatTimestamp(time.Now())

	_, err := e.db.ExecContext(ctx, `
		INSERT INTO employees (id, employee_code, full_name, department_code, employment_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			employee_code = excluded.employee_code,
			full_name = excluded.full_name,
			department_code = excluded.department_code,
			employment_status = excluded.employment_status,
			updated_at = excluded.updated_at
	`, emp.ID, emp.EmployeeCode, emp.FullName, emp.DepartmentCode, string(status), now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert employee %s: %w", emp.ID, err)
	}
	return nil
}
