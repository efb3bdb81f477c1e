package attendance

import (
	"context"

	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/ident"
)

// AttendanceService holds the attendance page state.
type AttendanceService interface {
	// Load fetches the employee picker list and the records in scope
	Load(ctx context.Context) (AttendancePageView, error)

	// View returns the current view without any I/O
	View() AttendancePageView

	// ChangeFilter re-fetches only when the employee scope changes;
	// the date range is always applied client-side.
	ChangeFilter(ctx context.Context, filter AttendanceFilter) (AttendancePageView, error)

	// ClearFilter resets to every employee and no date bounds
	ClearFilter(ctx context.Context) (AttendancePageView, error)

	// Mark marks attendance for one employee on one date
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendancePageView, error)

	// Delete removes a record
	Delete(ctx context.Context, id ident.ID) (AttendancePageView, error)
}
