// Package filter narrows fetched collections for display. Every function is
// pure and order-preserving: survivors keep their relative input order.
package filter

import (
	"strings"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
)

// Keep returns the elements of items for which keep is true.
func Keep[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// InDateRange reports whether date lies within [start, end]. Empty bounds
// are unconstrained. YYYY-MM-DD strings order lexicographically the same
// way they order chronologically, so no parsing is needed for the compare.
func InDateRange(date, start, end string) bool {
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}

// DateRange keeps records dated within the inclusive [start, end] range.
// With both bounds empty the input is returned unchanged. Once a bound is
// set, records without a parseable date are dropped.
func DateRange(records []attendance.Attendance, start, end string) []attendance.Attendance {
	if start == "" && end == "" {
		return records
	}
	return Keep(records, func(r attendance.Attendance) bool {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			return false
		}
		return InDateRange(r.Date, start, end)
	})
}

// MatchesSearch reports whether any of the employee's name, code, email or
// department contains query, case-insensitively. A blank query matches.
func MatchesSearch(e employee.Employee, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{e.FullName, e.EmployeeCode, e.Email, string(e.Department)} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Search keeps employees matching query.
func Search(employees []employee.Employee, query string) []employee.Employee {
	if strings.TrimSpace(query) == "" {
		return employees
	}
	return Keep(employees, func(e employee.Employee) bool {
		return MatchesSearch(e, query)
	})
}

// Department keeps employees in dept. Empty or "all" passes everything.
func Department(employees []employee.Employee, dept string) []employee.Employee {
	if dept == "" || dept == employee.AllDepartments {
		return employees
	}
	return Keep(employees, func(e employee.Employee) bool {
		return string(e.Department) == dept
	})
}

// Employees applies the employees page criteria in a single client-side stage.
func Employees(employees []employee.Employee, f employee.EmployeeFilter) []employee.Employee {
	return Department(Search(employees, f.Search), f.Department)
}

// Attendance applies the client-side stage of the attendance page criteria.
// The employee scope has already been applied by the API query that
// produced records.
func Attendance(records []attendance.Attendance, f attendance.AttendanceFilter) []attendance.Attendance {
	return DateRange(records, f.StartDate, f.EndDate)
}
