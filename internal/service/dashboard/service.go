package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/export"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/hrmsapi"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/stats"
	"github.com/cmlabs-hris/hrms-lite-go/internal/store"
	"golang.org/x/sync/errgroup"
)

const msgLoadFailed = "Failed to load dashboard data"

type DashboardServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	records        *store.Records
	now            func() time.Time
	loc            *time.Location

	mu       sync.Mutex
	loading  bool
	err      string
	loadedAt time.Time
}

func NewDashboardService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	records *store.Records,
	now func() time.Time,
	loc *time.Location,
) dashboard.DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		records:        records,
		now:            now,
		loc:            loc,
	}
}

// Load fetches both collections in parallel. A collection whose fetch
// fails keeps its previous contents; the other is still applied.
func (s *DashboardServiceImpl) Load(ctx context.Context) (dashboard.DashboardResponse, error) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	var g errgroup.Group

	// 1. Employees
	g.Go(func() error {
		ticket := s.records.Employees.Begin()
		employees, err := s.employeeRepo.List(ctx)
		if err != nil {
			return err
		}
		return commit(s.records.Employees, ticket, employees)
	})

	// 2. Every attendance record
	g.Go(func() error {
		ticket := s.records.Attendance.Begin()
		records, err := s.attendanceRepo.List(ctx, "")
		if err != nil {
			return err
		}
		return commit(s.records.Attendance, ticket, records)
	})

	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		slog.Error("failed to load dashboard data", "error", err)
		s.err = hrmsapi.UserMessage(err, msgLoadFailed)
		return s.viewLocked(), err
	}
	s.err = ""
	s.loadedAt = s.now()
	return s.viewLocked(), nil
}

func commit[T any](c *store.Collection[T], ticket uint64, items []T) error {
	err := c.Commit(ticket, items)
	if errors.Is(err, store.ErrStaleFetch) {
		return nil
	}
	return err
}

// View implements dashboard.DashboardService.
func (s *DashboardServiceImpl) View() dashboard.DashboardResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Export implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Export() ([]byte, error) {
	view := s.View()
	data, err := export.Workbook(view.Summary)
	if err != nil {
		return nil, fmt.Errorf("failed to export dashboard: %w", err)
	}
	return data, nil
}

func (s *DashboardServiceImpl) viewLocked() dashboard.DashboardResponse {
	today := stats.Today(s.now(), s.loc)
	resp := dashboard.DashboardResponse{
		Summary: stats.Summarize(s.records.Employees.Items(), s.records.Attendance.Items(), today),
		Loading: s.loading,
		Loaded:  s.records.Employees.Loaded() && s.records.Attendance.Loaded(),
		Error:   s.err,
	}
	if !s.loadedAt.IsZero() {
		resp.LoadedAt = s.loadedAt.Format(time.RFC3339)
	}
	return resp
}
