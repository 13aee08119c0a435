package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, employee_code, full_name, department_code, employment_status, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.DepartmentCode,
		&emp.Status, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, fmt.Errorf("employee with id %s: %w", id, employee.ErrEmployeeNotFound)
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return emp, nil
}

// GetByEmployeeCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmployeeCode(ctx context.Context, employeeCode string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_code = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, employeeCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, fmt.Errorf("employee with code %s: %w", employeeCode, employee.ErrEmployeeNotFound)
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with code %s: %w", employeeCode, err)
	}
	return emp, nil
}

// ListDepartmentCodes implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListDepartmentCodes(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT DISTINCT department_code
		FROM employees
		WHERE employment_status = $1
		ORDER BY department_code
	`

	rows, err := q.Query(ctx, query, employee.EmploymentStatusActive)
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

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

// Upsert implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Upsert(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, e.db)

	status := emp.Status
	if status == "" {
		status = employee.EmploymentStatusActive
	}

	query := `
		INSERT INTO employees (id, employee_code, full_name, department_code, employment_status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			employee_code = EXCLUDED.employee_code,
			full_name = EXCLUDED.full_name,
			department_code = EXCLUDED.department_code,
			employment_status = EXCLUDED.employment_status,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, emp.ID, emp.EmployeeCode, emp.FullName, emp.DepartmentCode, status); err != nil {
		return fmt.Errorf("failed to upsert employee %s: %w", emp.ID, err)
	}
	return nil
}
