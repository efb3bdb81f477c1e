package dashboard

import "context"

// DashboardService defines the dashboard page operations
type DashboardService interface {
	// Load fetches employees and attendance concurrently and returns the summary
	Load(ctx context.Context) (DashboardResponse, error)

	// View summarises the held collections without any I/O
	View() DashboardResponse

	// Export renders the current summary as an xlsx workbook
	Export() ([]byte, error)
}
