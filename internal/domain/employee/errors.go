package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmployeeIDMissing = errors.New("employee ID is required")
)
