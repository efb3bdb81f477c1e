package store

import (
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/ident"
)

// Records is the record store shared by every page.
type Records struct {
	// Employees is the unfiltered employee collection.
	Employees *Collection[employee.Employee]
	// Attendance is the unscoped attendance collection the dashboard reads.
	Attendance *Collection[attendance.Attendance]
	// ScopedAttendance is the attendance page's collection, scoped to its
	// employee filter by the API query that filled it.
	ScopedAttendance *Collection[attendance.Attendance]
}

func NewRecords() *Records {
	return &Records{
		Employees:        NewCollection[employee.Employee](),
		Attendance:       NewCollection[attendance.Attendance](),
		ScopedAttendance: NewCollection[attendance.Attendance](),
	}
}

func EmployeeByID(id ident.ID) func(employee.Employee) bool {
	return func(e employee.Employee) bool { return e.ID == id }
}

func AttendanceByID(id ident.ID) func(attendance.Attendance) bool {
	return func(a attendance.Attendance) bool { return a.ID == id }
}

// SameAttendance matches the held record that rec supersedes: the same id,
// or the same employee on the same date.
func SameAttendance(rec attendance.Attendance) func(attendance.Attendance) bool {
	return func(a attendance.Attendance) bool {
		if !rec.ID.IsZero() && a.ID == rec.ID {
			return true
		}
		return attendance.SameDay(a, rec)
	}
}

// RemoveEmployee drops an employee and, mirroring the API's cascade, every
// held attendance record that belongs to them.
func (r *Records) RemoveEmployee(id ident.ID) int {
	emp, found := r.Employees.Find(EmployeeByID(id))
	removed := r.Employees.Remove(EmployeeByID(id))

	belongs := func(a attendance.Attendance) bool {
		if a.EmployeeID == id {
			return true
		}
		return found && emp.EmployeeCode != "" && a.EmployeeCode == emp.EmployeeCode
	}
	r.Attendance.Remove(belongs)
	r.ScopedAttendance.Remove(belongs)
	return removed
}
