package hrmsapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/ident"
)

type employeeRepositoryImpl struct {
	client *Client
}

func NewEmployeeRepository(client *Client) employee.EmployeeRepository {
	return &employeeRepositoryImpl{client: client}
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	employees := make([]employee.Employee, 0)
	err := r.client.do(ctx, "list employees", http.MethodGet, r.client.endpoint(nil, "employees"), nil, &employees)
	if err != nil {
		return nil, err
	}
	return employees, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id ident.ID) (employee.Employee, error) {
	var emp employee.Employee
	err := r.client.do(ctx, "get employee", http.MethodGet, r.client.endpoint(nil, "employees", id.String()), nil, &emp)
	if err != nil {
		return employee.Employee{}, notFound(err, employee.ErrEmployeeNotFound)
	}
	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, req employee.EmployeeRequest) (employee.Employee, error) {
	var emp employee.Employee
	err := r.client.do(ctx, "create employee", http.MethodPost, r.client.endpoint(nil, "employees"), req, &emp)
	if err != nil {
		return employee.Employee{}, err
	}
	return emp, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, id ident.ID, req employee.EmployeeRequest) (employee.Employee, error) {
	var emp employee.Employee
	err := r.client.do(ctx, "update employee", http.MethodPut, r.client.endpoint(nil, "employees", id.String()), req, &emp)
	if err != nil {
		return employee.Employee{}, notFound(err, employee.ErrEmployeeNotFound)
	}
	return emp, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id ident.ID) error {
	err := r.client.do(ctx, "delete employee", http.MethodDelete, r.client.endpoint(nil, "employees", id.String()), nil, nil)
	if err != nil {
		return notFound(err, employee.ErrEmployeeNotFound)
	}
	return nil
}

// notFound tags a 404 APIError with the domain's not-found sentinel while
// keeping the APIError reachable through errors.As.
func notFound(err, sentinel error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}
