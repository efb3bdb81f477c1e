package employee

import (
	"strings"

	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/ident"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
)

// EmployeeRequest is the create/update payload. Update sends every field.
type EmployeeRequest struct {
	EmployeeCode string     `json:"employee_id" label:"Employee ID" validate:"notblank"`
	FullName     string     `json:"full_name" label:"Full Name" validate:"notblank"`
	Email        string     `json:"email" label:"Email" validate:"notblank,email_addr"`
	Department   Department `json:"department" label:"Department" validate:"notblank,oneof=HR Engineering Sales Marketing Finance Operations"`
}

func (r *EmployeeRequest) Validate() error {
	return validator.Struct(r)
}

// RequestFrom builds the full-record payload for an existing employee.
func RequestFrom(e Employee) EmployeeRequest {
	return EmployeeRequest{
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		Email:        e.Email,
		Department:   e.Department,
	}
}

// EmployeeFilter is the employees page filter criteria.
type EmployeeFilter struct {
	Search     string `json:"search"`
	Department string `json:"department"`
}

func (f *EmployeeFilter) Validate() error {
	dept := strings.TrimSpace(f.Department)
	if dept == "" || dept == AllDepartments {
		f.Department = AllDepartments
		return nil
	}
	if !Department(dept).IsValid() {
		return ErrInvalidDepartmentScope
	}
	f.Department = dept
	return nil
}

// DefaultFilter is the filter applied after a clear action.
func DefaultFilter() EmployeeFilter {
	return EmployeeFilter{Department: AllDepartments}
}

// EmployeePageView is the read-only view model for the employees page.
type EmployeePageView struct {
	Employees   []Employee     `json:"employees"`
	Total       int            `json:"total"`
	Visible     int            `json:"visible"`
	Filter      EmployeeFilter `json:"filter"`
	Departments []Department   `json:"departments"`
	Editing     *Employee      `json:"editing,omitempty"`
	DeletingID  ident.ID       `json:"deleting_id,omitempty"`
	Submitting  bool           `json:"submitting"`
	Loading     bool           `json:"loading"`
	Loaded      bool           `json:"loaded"`
	Error       string         `json:"error,omitempty"`
	SubmitError string         `json:"submit_error,omitempty"`
}
