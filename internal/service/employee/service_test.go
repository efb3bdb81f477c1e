package employee

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/hrmsapi"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/ident"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-lite-go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	list      []employee.Employee
	listErr   error
	created   employee.Employee
	updated   employee.Employee
	writeErr  error
	deleteErr error

	createCalls []employee.EmployeeRequest
	updateCalls []ident.ID
	deleteCalls []ident.ID
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return f.list, f.listErr
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id ident.ID) (employee.Employee, error) {
	for _, e := range f.list {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, req employee.EmployeeRequest) (employee.Employee, error) {
	f.createCalls = append(f.createCalls, req)
	return f.created, f.writeErr
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, id ident.ID, req employee.EmployeeRequest) (employee.Employee, error) {
	f.updateCalls = append(f.updateCalls, id)
	return f.updated, f.writeErr
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id ident.ID) error {
	f.deleteCalls = append(f.deleteCalls, id)
	return f.deleteErr
}

var (
	ann = employee.Employee{ID: "1", EmployeeCode: "EMP001", FullName: "Ann Lee", Email: "ann@x.io", Department: employee.DepartmentHR}
	bob = employee.Employee{ID: "2", EmployeeCode: "EMP002", FullName: "Bob Stone", Email: "bob@x.io", Department: employee.DepartmentEngineering}
)

func newLoadedService(t *testing.T, repo *fakeEmployeeRepo) (*EmployeeServiceImpl, *store.Records) {
	t.Helper()
	records := store.NewRecords()
	svc := NewEmployeeService(repo, records).(*EmployeeServiceImpl)
	_, err := svc.Load(context.Background())
	require.NoError(t, err)
	return svc, records
}

func TestEmployeeService_Load(t *testing.T) {
	repo := &fakeEmployeeRepo{list: []employee.Employee{ann, bob}}
	svc, _ := newLoadedService(t, repo)

	view := svc.View()
	assert.True(t, view.Loaded)
	assert.False(t, view.Loading)
	assert.Equal(t, 2, view.Total)
	assert.Equal(t, []employee.Employee{ann, bob}, view.Employees)
	assert.Equal(t, employee.Departments(), view.Departments)
	assert.Equal(t, employee.AllDepartments, view.Filter.Department)
}

func TestEmployeeService_LoadFailureKeepsCollection(t *testing.T) {
	repo := &fakeEmployeeRepo{list: []employee.Employee{ann}}
	svc, _ := newLoadedService(t, repo)

	repo.listErr = &hrmsapi.TransportError{Op: "list employees", Err: errors.New("")}
	view, err := svc.Load(context.Background())

	require.Error(t, err)
	assert.Equal(t, "Failed to fetch employees", view.Error)
	assert.Equal(t, []employee.Employee{ann}, view.Employees)
}

func TestEmployeeService_ChangeFilter(t *testing.T) {
	repo := &fakeEmployeeRepo{list: []employee.Employee{ann, bob}}
	svc, _ := newLoadedService(t, repo)

	view, err := svc.ChangeFilter(employee.EmployeeFilter{Search: "STONE"})
	require.NoError(t, err)
	assert.Equal(t, []employee.Employee{bob}, view.Employees)
	assert.Equal(t, 2, view.Total)
	assert.Equal(t, 1, view.Visible)

	view, err = svc.ChangeFilter(employee.EmployeeFilter{Department: "HR"})
	require.NoError(t, err)
	assert.Equal(t, []employee.Employee{ann}, view.Employees)

	_, err = svc.ChangeFilter(employee.EmployeeFilter{Department: "Legal"})
	assert.ErrorIs(t, err, employee.ErrInvalidDepartmentScope)

	view = svc.ClearFilter()
	assert.Len(t, view.Employees, 2)
}

func TestEmployeeService_SubmitCreates(t *testing.T) {
	carl := employee.Employee{ID: "3", EmployeeCode: "EMP003", FullName: "Carl Diaz", Email: "carl@x.io", Department: employee.DepartmentSales}
	repo := &fakeEmployeeRepo{list: []employee.Employee{ann}, created: carl}
	svc, _ := newLoadedService(t, repo)

	view, err := svc.Submit(context.Background(), employee.RequestFrom(carl))
	require.NoError(t, err)
	assert.Equal(t, []employee.Employee{carl, ann}, view.Employees)
	assert.False(t, view.Submitting)
	require.Len(t, repo.createCalls, 1)
}

func TestEmployeeService_SubmitCreatedWithoutIDKeepsOthers(t *testing.T) {
	draftA := employee.Employee{EmployeeCode: "EMP010", FullName: "Dee Ray", Email: "dee@x.io", Department: employee.DepartmentHR}
	draftB := employee.Employee{EmployeeCode: "EMP011", FullName: "Eli Moss", Email: "eli@x.io", Department: employee.DepartmentHR}
	carl := employee.Employee{EmployeeCode: "EMP003", FullName: "Carl Diaz", Email: "carl@x.io", Department: employee.DepartmentSales}
	repo := &fakeEmployeeRepo{list: []employee.Employee{draftA, draftB}, created: carl}
	svc, _ := newLoadedService(t, repo)

	view, err := svc.Submit(context.Background(), employee.RequestFrom(carl))
	require.NoError(t, err)
	assert.Equal(t, []employee.Employee{carl, draftA, draftB}, view.Employees)
}

func TestEmployeeService_SubmitValidation(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc, _ := newLoadedService(t, repo)

	_, err := svc.Submit(context.Background(), employee.EmployeeRequest{FullName: "x", Email: "bad"})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Empty(t, repo.createCalls)
}

func TestEmployeeService_SubmitFailureShowsAPIMessage(t *testing.T) {
	repo := &fakeEmployeeRepo{writeErr: &hrmsapi.APIError{Op: "create employee", StatusCode: 400, Message: "Employee ID already exists"}}
	svc, _ := newLoadedService(t, repo)

	view, err := svc.Submit(context.Background(), employee.RequestFrom(ann))
	require.Error(t, err)
	assert.Equal(t, "Employee ID already exists", view.SubmitError)
	assert.False(t, view.Submitting)
	assert.Empty(t, view.Employees)
}

func TestEmployeeService_EditFlow(t *testing.T) {
	renamed := ann
	renamed.FullName = "Ann Lee-Park"
	repo := &fakeEmployeeRepo{list: []employee.Employee{ann, bob}, updated: renamed}
	svc, _ := newLoadedService(t, repo)

	_, err := svc.RequestEdit("missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	view, err := svc.RequestEdit(ann.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Editing)
	assert.Equal(t, ann, *view.Editing)

	changedCode := employee.RequestFrom(renamed)
	changedCode.EmployeeCode = "EMP999"
	_, err = svc.Submit(context.Background(), changedCode)
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeImmutable)
	assert.Empty(t, repo.updateCalls)

	view, err = svc.Submit(context.Background(), employee.RequestFrom(renamed))
	require.NoError(t, err)
	assert.Equal(t, []ident.ID{ann.ID}, repo.updateCalls)
	assert.Nil(t, view.Editing)
	assert.Equal(t, []employee.Employee{renamed, bob}, view.Employees)
}

func TestEmployeeService_CancelEdit(t *testing.T) {
	repo := &fakeEmployeeRepo{list: []employee.Employee{ann}}
	svc, _ := newLoadedService(t, repo)

	_, err := svc.RequestEdit(ann.ID)
	require.NoError(t, err)

	view := svc.CancelEdit()
	assert.Nil(t, view.Editing)
}

func TestEmployeeService_DeleteCascades(t *testing.T) {
	repo := &fakeEmployeeRepo{list: []employee.Employee{ann, bob}}
	svc, records := newLoadedService(t, repo)

	held := []attendance.Attendance{
		{ID: "a", EmployeeID: ann.ID, EmployeeCode: ann.EmployeeCode, Date: "2024-01-01", Status: attendance.StatusPresent},
		{ID: "b", EmployeeID: bob.ID, EmployeeCode: bob.EmployeeCode, Date: "2024-01-01", Status: attendance.StatusAbsent},
	}
	require.NoError(t, records.Attendance.Commit(records.Attendance.Begin(), held))

	view, err := svc.Delete(context.Background(), ann.ID)
	require.NoError(t, err)
	assert.Equal(t, []employee.Employee{bob}, view.Employees)
	assert.Empty(t, view.DeletingID)

	left := records.Attendance.Items()
	require.Len(t, left, 1)
	assert.Equal(t, ident.ID("b"), left[0].ID)
}

func TestEmployeeService_DeleteFailure(t *testing.T) {
	repo := &fakeEmployeeRepo{list: []employee.Employee{ann}, deleteErr: &hrmsapi.APIError{Op: "delete employee", StatusCode: 500}}
	svc, _ := newLoadedService(t, repo)

	view, err := svc.Delete(context.Background(), ann.ID)
	require.Error(t, err)
	assert.Equal(t, "Failed to delete employee", view.SubmitError)
	assert.Equal(t, []employee.Employee{ann}, view.Employees)
}

func TestEmployeeService_GetEmployee(t *testing.T) {
	repo := &fakeEmployeeRepo{list: []employee.Employee{ann}}
	svc, _ := newLoadedService(t, repo)

	got, err := svc.GetEmployee(context.Background(), ann.ID)
	require.NoError(t, err)
	assert.Equal(t, ann, got)

	_, err = svc.GetEmployee(context.Background(), "nope")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
