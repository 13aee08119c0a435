package employee

import "time"

// Employee is the directory view the roster core needs: the canonical code and
// the department the employee currently belongs to.
type Employee struct {
	ID             string
	EmployeeCode   string
	FullName       string
	DepartmentCode string
	Status         EmploymentStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
