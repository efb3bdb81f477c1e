package dashboard

import "github.com/cmlabs-hris/hrms-lite-go/internal/pkg/stats"

// DashboardResponse is the dashboard page view model.
type DashboardResponse struct {
	stats.Summary
	Loading  bool   `json:"loading"`
	Loaded   bool   `json:"loaded"`
	Error    string `json:"error,omitempty"`
	LoadedAt string `json:"loaded_at,omitempty"` // RFC3339
}
