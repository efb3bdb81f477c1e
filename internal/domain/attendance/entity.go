package attendance

import "github.com/cmlabs-hris/hrms-lite-go/internal/pkg/ident"

// Attendance is one day's mark for one employee. At most one record per
// (employee, date) is expected; the API updates rather than duplicates.
type Attendance struct {
	ID ident.ID `json:"id"`
	// EmployeeID references the employee's internal id, as sent by the mark form.
	EmployeeID ident.ID `json:"employee_id"`
	// EmployeeCode is the employee's public code; rollups join on it.
	EmployeeCode string `json:"emp_id"`
	FullName     string `json:"full_name,omitempty"`
	Date         string `json:"date"` // YYYY-MM-DD
	Status       Status `json:"status"`
}

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

func (s Status) IsValid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// AllEmployees is the filter sentinel meaning "every employee".
const AllEmployees = "all"

// SameDay reports whether a and b mark the same employee on the same date.
func SameDay(a, b Attendance) bool {
	return a.EmployeeID == b.EmployeeID && a.Date == b.Date
}
