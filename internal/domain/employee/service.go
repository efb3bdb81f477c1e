package employee

import (
	"context"

	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/ident"
)

// EmployeeService holds the employees page state. Every method is one user
// action and returns the resulting view.
type EmployeeService interface {
	// Load re-fetches the employee collection
	Load(ctx context.Context) (EmployeePageView, error)

	// View returns the current view without any I/O
	View() EmployeePageView

	// ChangeFilter narrows the visible list; it never re-fetches
	ChangeFilter(filter EmployeeFilter) (EmployeePageView, error)

	// ClearFilter restores the unfiltered view
	ClearFilter() EmployeePageView

	// GetEmployee fetches a single employee from the API
	GetEmployee(ctx context.Context, id ident.ID) (Employee, error)

	// RequestEdit switches the form into edit mode for a held employee
	RequestEdit(id ident.ID) (EmployeePageView, error)

	// CancelEdit switches the form back to create mode
	CancelEdit() EmployeePageView

	// Submit creates an employee, or updates the one being edited
	Submit(ctx context.Context, req EmployeeRequest) (EmployeePageView, error)

	// Delete removes an employee
	Delete(ctx context.Context, id ident.ID) (EmployeePageView, error)
}
