package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/filter"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/hrmsapi"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/ident"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/stats"
	"github.com/cmlabs-hris/hrms-lite-go/internal/store"
	"golang.org/x/sync/errgroup"
)

const (
	msgFetchEmployeesFailed = "Failed to fetch employees"
	msgFetchFailed          = "Failed to fetch attendance records"
	msgMarkFailed           = "Failed to mark attendance"
	msgDeleteFailed         = "Failed to delete attendance record"

	titleAll = "All Attendance Records"
)

type pageState struct {
	filter      attendance.AttendanceFilter
	deletingID  ident.ID
	submitting  bool
	loading     bool
	err         string
	submitError string
}

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	records        *store.Records
	now            func() time.Time
	loc            *time.Location

	mu   sync.Mutex
	page pageState
}

// NewAttendanceService creates the attendance page service. now and loc
// decide the mark form's default date; a nil now means time.Now.
func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	records *store.Records,
	now func() time.Time,
	loc *time.Location,
) attendance.AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		records:        records,
		now:            now,
		loc:            loc,
		page:           pageState{filter: attendance.DefaultFilter()},
	}
}

// Load implements attendance.AttendanceService. The employee list and the
// records in scope are fetched independently; either may fail alone.
func (s *AttendanceServiceImpl) Load(ctx context.Context) (attendance.AttendancePageView, error) {
	s.mu.Lock()
	s.page.loading = true
	current := s.page.filter
	s.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error {
		if err := s.fetchEmployees(ctx); err != nil {
			s.setError(hrmsapi.UserMessage(err, msgFetchEmployeesFailed))
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := s.fetchRecords(ctx, current); err != nil {
			s.setError(hrmsapi.UserMessage(err, msgFetchFailed))
			return err
		}
		return nil
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.page.loading = false
	if err == nil {
		s.page.err = ""
	}
	return s.viewLocked(), err
}

// View implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) View() attendance.AttendancePageView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// ChangeFilter implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ChangeFilter(ctx context.Context, f attendance.AttendanceFilter) (attendance.AttendancePageView, error) {
	if err := f.Validate(); err != nil {
		return s.View(), err
	}

	s.mu.Lock()
	prev := s.page.filter
	prevScope, _ := prev.EmployeeScope()
	s.page.filter = f
	s.mu.Unlock()

	nextScope, _ := f.EmployeeScope()
	if prevScope == nextScope {
		return s.View(), nil
	}

	s.mu.Lock()
	s.page.loading = true
	s.mu.Unlock()

	err := s.fetchRecords(ctx, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.page.loading = false
	if err != nil {
		slog.Error("failed to fetch attendance records", "employee_id", f.EmployeeID, "error", err)
		// The held records still belong to prev's scope.
		if s.page.filter == f {
			s.page.filter = prev
		}
		s.page.err = hrmsapi.UserMessage(err, msgFetchFailed)
		return s.viewLocked(), err
	}
	s.page.err = ""
	return s.viewLocked(), nil
}

// ClearFilter implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClearFilter(ctx context.Context) (attendance.AttendancePageView, error) {
	return s.ChangeFilter(ctx, attendance.DefaultFilter())
}

// Mark implements attendance.AttendanceService. After a successful mark the
// records in scope are re-fetched; if that fails the returned record is
// merged locally instead.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendancePageView, error) {
	if err := req.Validate(); err != nil {
		return s.View(), err
	}

	s.mu.Lock()
	s.page.submitting = true
	s.page.submitError = ""
	s.mu.Unlock()

	rec, err := s.attendanceRepo.Mark(ctx, req)
	if err != nil {
		slog.Error("failed to mark attendance", "employee_id", req.EmployeeID, "date", req.Date, "error", err)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.page.submitting = false
		s.page.submitError = hrmsapi.UserMessage(err, msgMarkFailed)
		return s.viewLocked(), err
	}
	if rec.EmployeeID == "" {
		rec.EmployeeID = ident.ID(req.EmployeeID)
	}
	slog.Info("attendance marked", "id", rec.ID, "employee_id", rec.EmployeeID, "date", rec.Date, "status", rec.Status)

	s.mu.Lock()
	current := s.page.filter
	s.mu.Unlock()

	scope, scoped := current.EmployeeScope()
	refetchErr := s.fetchRecords(ctx, current)
	if refetchErr != nil {
		slog.Warn("re-fetch after mark failed, merging locally", "error", refetchErr)
		if !scoped || scope == rec.EmployeeID {
			s.records.ScopedAttendance.Upsert(rec, store.SameAttendance(rec))
		}
	}
	if scoped || refetchErr != nil {
		s.records.Attendance.Upsert(rec, store.SameAttendance(rec))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.page.submitting = false
	return s.viewLocked(), nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id ident.ID) (attendance.AttendancePageView, error) {
	s.mu.Lock()
	s.page.deletingID = id
	current := s.page.filter
	s.mu.Unlock()

	err := s.attendanceRepo.Delete(ctx, id)
	if err != nil {
		slog.Error("failed to delete attendance record", "id", id, "error", err)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.clearDeletingLocked(id)
		s.page.err = hrmsapi.UserMessage(err, msgDeleteFailed)
		return s.viewLocked(), err
	}
	slog.Info("attendance record deleted", "id", id)

	if err := s.fetchRecords(ctx, current); err != nil {
		slog.Warn("re-fetch after delete failed, removing locally", "error", err)
		s.records.ScopedAttendance.Remove(store.AttendanceByID(id))
		s.records.Attendance.Remove(store.AttendanceByID(id))
	} else if _, scoped := current.EmployeeScope(); scoped {
		s.records.Attendance.Remove(store.AttendanceByID(id))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearDeletingLocked(id)
	return s.viewLocked(), nil
}

func (s *AttendanceServiceImpl) clearDeletingLocked(id ident.ID) {
	if s.page.deletingID == id {
		s.page.deletingID = ""
	}
}

func (s *AttendanceServiceImpl) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page.err = msg
}

func (s *AttendanceServiceImpl) fetchEmployees(ctx context.Context) error {
	ticket := s.records.Employees.Begin()
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return err
	}
	return commit(s.records.Employees, ticket, employees)
}

// fetchRecords asks the API for the records in f's employee scope. An
// unscoped result also refreshes the dashboard's collection.
func (s *AttendanceServiceImpl) fetchRecords(ctx context.Context, f attendance.AttendanceFilter) error {
	scopeID, scoped := f.EmployeeScope()

	scopedTicket := s.records.ScopedAttendance.Begin()
	var allTicket uint64
	if !scoped {
		allTicket = s.records.Attendance.Begin()
	}

	var (
		records []attendance.Attendance
		err     error
	)
	if scoped {
		records, err = s.attendanceRepo.ListByEmployee(ctx, scopeID, "")
	} else {
		records, err = s.attendanceRepo.List(ctx, "")
	}
	if err != nil {
		return err
	}

	if err := commit(s.records.ScopedAttendance, scopedTicket, records); err != nil {
		return err
	}
	if !scoped {
		return commit(s.records.Attendance, allTicket, records)
	}
	return nil
}

// commit applies a fetch result. A stale result is dropped quietly.
func commit[T any](c *store.Collection[T], ticket uint64, items []T) error {
	err := c.Commit(ticket, items)
	if errors.Is(err, store.ErrStaleFetch) {
		slog.Debug("discarded stale fetch", "ticket", ticket)
		return nil
	}
	return err
}

func (s *AttendanceServiceImpl) title(f attendance.AttendanceFilter) string {
	scopeID, scoped := f.EmployeeScope()
	if !scoped {
		return titleAll
	}
	if emp, ok := s.records.Employees.Find(store.EmployeeByID(scopeID)); ok {
		return fmt.Sprintf("Attendance for %s", emp.FullName)
	}
	return fmt.Sprintf("Attendance for employee %s", scopeID)
}

func (s *AttendanceServiceImpl) viewLocked() attendance.AttendancePageView {
	all := s.records.ScopedAttendance.Items()
	visible := filter.Attendance(all, s.page.filter)

	return attendance.AttendancePageView{
		Title:        s.title(s.page.filter),
		Records:      visible,
		Total:        len(all),
		Visible:      len(visible),
		Filter:       s.page.filter,
		Employees:    s.records.Employees.Items(),
		FormDefaults: attendance.MarkFormDefaults(stats.Today(s.now(), s.loc)),
		DeletingID:   s.page.deletingID,
		Submitting:   s.page.submitting,
		Loading:      s.page.loading,
		Loaded:       s.records.ScopedAttendance.Loaded(),
		Error:        s.page.err,
		SubmitError:  s.page.submitError,
	}
}
