package employee

import "context"

type EmployeeRepository interface {
	// GetByID returns ErrEmployeeNotFound when the identifier does not resolve.
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, employeeCode string) (Employee, error)
	// ListDepartmentCodes returns every department with at least one active employee.
	ListDepartmentCodes(ctx context.Context) ([]string, error)
	// Upsert creates or refreshes a directory row, keyed by ID.
	Upsert(ctx context.Context, emp Employee) error
}
