package attendance

import (
	"strings"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/ident"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// MarkAttendanceRequest is the mark payload. EmployeeID carries the
// employee's internal id, which is what the mark form submits.
type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id" label:"Employee" validate:"notblank"`
	Date       string `json:"date" label:"Date" validate:"notblank,isodate"`
	Status     Status `json:"status" label:"Status" validate:"notblank,oneof=Present Absent"`
}

func (r *MarkAttendanceRequest) Validate() error {
	return validator.Struct(r)
}

// MarkFormDefaults returns the initial mark form: today, Present.
func MarkFormDefaults(today string) MarkAttendanceRequest {
	return MarkAttendanceRequest{
		Date:   today,
		Status: StatusPresent,
	}
}

// AttendanceFilter is the attendance page filter criteria. The employee
// scope is resolved by the API; the date range is applied locally.
type AttendanceFilter struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date,omitempty"` // YYYY-MM-DD, inclusive
	EndDate    string `json:"end_date,omitempty"`   // YYYY-MM-DD, inclusive
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	f.EmployeeID = strings.TrimSpace(f.EmployeeID)
	if f.EmployeeID == "" {
		f.EmployeeID = AllEmployees
	}

	f.StartDate = strings.TrimSpace(f.StartDate)
	if f.StartDate != "" {
		if _, ok := validator.IsValidDate(f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: ErrInvalidDateFilter.Error(),
			})
		}
	}

	f.EndDate = strings.TrimSpace(f.EndDate)
	if f.EndDate != "" {
		if _, ok := validator.IsValidDate(f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: ErrInvalidDateFilter.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeeScope returns the selected employee, or false when every
// employee is in scope.
func (f AttendanceFilter) EmployeeScope() (ident.ID, bool) {
	if f.EmployeeID == "" || f.EmployeeID == AllEmployees {
		return "", false
	}
	return ident.ID(f.EmployeeID), true
}

// DefaultFilter is the filter applied after a clear action.
func DefaultFilter() AttendanceFilter {
	return AttendanceFilter{EmployeeID: AllEmployees}
}

// AttendancePageView is the read-only view model for the attendance page.
type AttendancePageView struct {
	Title        string                `json:"title"`
	Records      []Attendance          `json:"records"`
	Total        int                   `json:"total"`
	Visible      int                   `json:"visible"`
	Filter       AttendanceFilter      `json:"filter"`
	Employees    []employee.Employee   `json:"employees"`
	FormDefaults MarkAttendanceRequest `json:"form_defaults"`
	DeletingID   ident.ID              `json:"deleting_id,omitempty"`
	Submitting   bool                  `json:"submitting"`
	Loading      bool                  `json:"loading"`
	Loaded       bool                  `json:"loaded"`
	Error        string                `json:"error,omitempty"`
	SubmitError  string                `json:"submit_error,omitempty"`
}
