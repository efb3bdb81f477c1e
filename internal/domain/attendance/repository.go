package attendance

import (
	"context"

	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/ident"
)

// AttendanceRepository is the remote HRMS API surface for attendance.
type AttendanceRepository interface {
	// List returns every record, or only those on date when date is set.
	List(ctx context.Context, date string) ([]Attendance, error)

	// ListByEmployee returns one employee's records, optionally for a YYYY-MM month.
	ListByEmployee(ctx context.Context, employeeID ident.ID, month string) ([]Attendance, error)

	// Mark creates a record, or updates the existing same-day record.
	Mark(ctx context.Context, req MarkAttendanceRequest) (Attendance, error)

	Delete(ctx context.Context, id ident.ID) error
}
