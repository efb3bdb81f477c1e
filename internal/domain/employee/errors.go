package employee

import "errors"

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrEmployeeCodeImmutable  = errors.New("employee code cannot be changed")
	ErrInvalidDepartmentScope = errors.New("department filter must be 'all' or a known department")
)
