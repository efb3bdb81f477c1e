package employee

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/filter"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/hrmsapi"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/ident"
	"github.com/cmlabs-hris/hrms-lite-go/internal/store"
)

const (
	msgFetchFailed  = "Failed to fetch employees"
	msgCreateFailed = "Failed to create employee"
	msgUpdateFailed = "Failed to update employee"
	msgDeleteFailed = "Failed to delete employee"
)

// pageState is everything on the employees page that is not the collection.
type pageState struct {
	filter      employee.EmployeeFilter
	editing     *employee.Employee
	deletingID  ident.ID
	submitting  bool
	loading     bool
	err         string
	submitError string
}

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	records      *store.Records

	mu   sync.Mutex
	page pageState
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, records *store.Records) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		records:      records,
		page:         pageState{filter: employee.DefaultFilter()},
	}
}

// Load implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Load(ctx context.Context) (employee.EmployeePageView, error) {
	s.mu.Lock()
	s.page.loading = true
	s.mu.Unlock()

	ticket := s.records.Employees.Begin()
	employees, err := s.employeeRepo.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.page.loading = false

	if err != nil {
		slog.Error("failed to fetch employees", "error", err)
		s.page.err = hrmsapi.UserMessage(err, msgFetchFailed)
		return s.viewLocked(), err
	}

	if err := s.records.Employees.Commit(ticket, employees); err != nil {
		if !errors.Is(err, store.ErrStaleFetch) {
			return s.viewLocked(), err
		}
		slog.Debug("discarded stale employee fetch", "ticket", ticket)
	}
	s.page.err = ""
	return s.viewLocked(), nil
}

// View implements employee.EmployeeService.
func (s *EmployeeServiceImpl) View() employee.EmployeePageView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// ChangeFilter implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ChangeFilter(f employee.EmployeeFilter) (employee.EmployeePageView, error) {
	if err := f.Validate(); err != nil {
		return s.View(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.page.filter = f
	return s.viewLocked(), nil
}

// ClearFilter implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ClearFilter() employee.EmployeePageView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page.filter = employee.DefaultFilter()
	return s.viewLocked()
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id ident.ID) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}
	s.records.Employees.Replace(emp, store.EmployeeByID(id))
	return emp, nil
}

// RequestEdit implements employee.EmployeeService.
func (s *EmployeeServiceImpl) RequestEdit(id ident.ID) (employee.EmployeePageView, error) {
	emp, ok := s.records.Employees.Find(store.EmployeeByID(id))

	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok {
		return s.viewLocked(), employee.ErrEmployeeNotFound
	}
	s.page.editing = &emp
	s.page.submitError = ""
	return s.viewLocked(), nil
}

// CancelEdit implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CancelEdit() employee.EmployeePageView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page.editing = nil
	s.page.submitError = ""
	return s.viewLocked()
}

// Submit implements employee.EmployeeService. While an employee is being
// edited the request updates it; otherwise it creates a new one.
func (s *EmployeeServiceImpl) Submit(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeePageView, error) {
	if err := req.Validate(); err != nil {
		return s.View(), err
	}

	s.mu.Lock()
	editing := s.page.editing
	if editing != nil && req.EmployeeCode != editing.EmployeeCode {
		s.page.submitError = employee.ErrEmployeeCodeImmutable.Error()
		view := s.viewLocked()
		s.mu.Unlock()
		return view, employee.ErrEmployeeCodeImmutable
	}
	s.page.submitting = true
	s.page.submitError = ""
	s.mu.Unlock()

	if editing != nil {
		return s.update(ctx, *editing, req)
	}
	return s.create(ctx, req)
}

func (s *EmployeeServiceImpl) create(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeePageView, error) {
	created, err := s.employeeRepo.Create(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.page.submitting = false

	if err != nil {
		slog.Error("failed to create employee", "employee_code", req.EmployeeCode, "error", err)
		s.page.submitError = hrmsapi.UserMessage(err, msgCreateFailed)
		return s.viewLocked(), err
	}

	if created.ID.IsZero() {
		s.records.Employees.Upsert(created, func(employee.Employee) bool { return false })
	} else {
		s.records.Employees.Upsert(created, store.EmployeeByID(created.ID))
	}
	slog.Info("employee created", "id", created.ID, "employee_code", created.EmployeeCode)
	return s.viewLocked(), nil
}

func (s *EmployeeServiceImpl) update(ctx context.Context, current employee.Employee, req employee.EmployeeRequest) (employee.EmployeePageView, error) {
	updated, err := s.employeeRepo.Update(ctx, current.ID, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.page.submitting = false

	if err != nil {
		slog.Error("failed to update employee", "id", current.ID, "error", err)
		s.page.submitError = hrmsapi.UserMessage(err, msgUpdateFailed)
		return s.viewLocked(), err
	}

	s.records.Employees.Upsert(updated, store.EmployeeByID(current.ID))
	if s.page.editing != nil && s.page.editing.ID == current.ID {
		s.page.editing = nil
	}
	slog.Info("employee updated", "id", updated.ID)
	return s.viewLocked(), nil
}

// Delete implements employee.EmployeeService. The employee's held
// attendance records go with it.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id ident.ID) (employee.EmployeePageView, error) {
	s.mu.Lock()
	s.page.deletingID = id
	s.page.submitError = ""
	s.mu.Unlock()

	err := s.employeeRepo.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page.deletingID == id {
		s.page.deletingID = ""
	}

	if err != nil {
		slog.Error("failed to delete employee", "id", id, "error", err)
		s.page.submitError = hrmsapi.UserMessage(err, msgDeleteFailed)
		return s.viewLocked(), err
	}

	s.records.RemoveEmployee(id)
	if s.page.editing != nil && s.page.editing.ID == id {
		s.page.editing = nil
	}
	slog.Info("employee deleted", "id", id)
	return s.viewLocked(), nil
}

func (s *EmployeeServiceImpl) viewLocked() employee.EmployeePageView {
	all := s.records.Employees.Items()
	visible := filter.Employees(all, s.page.filter)

	var editing *employee.Employee
	if s.page.editing != nil {
		e := *s.page.editing
		editing = &e
	}

	return employee.EmployeePageView{
		Employees:   visible,
		Total:       len(all),
		Visible:     len(visible),
		Filter:      s.page.filter,
		Departments: employee.Departments(),
		Editing:     editing,
		DeletingID:  s.page.deletingID,
		Submitting:  s.page.submitting,
		Loading:     s.page.loading,
		Loaded:      s.records.Employees.Loaded(),
		Error:       s.page.err,
		SubmitError: s.page.submitError,
	}
}
