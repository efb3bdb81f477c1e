package employee

import (
	"context"

	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/ident"
)

// EmployeeRepository is the remote HRMS API surface for employees.
type EmployeeRepository interface {
	List(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id ident.ID) (Employee, error)
	Create(ctx context.Context, req EmployeeRequest) (Employee, error)
	// Update sends the full record; the API has no partial patch semantics.
	Update(ctx context.Context, id ident.ID, req EmployeeRequest) (Employee, error)
	// Delete cascades to the employee's attendance records on the API side.
	Delete(ctx context.Context, id ident.ID) error
}
