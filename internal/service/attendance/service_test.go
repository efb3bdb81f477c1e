package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/hrmsapi"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/ident"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-lite-go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	all        []attendance.Attendance
	byEmployee map[ident.ID][]attendance.Attendance
	listErr    error
	marked     attendance.Attendance
	markErr    error
	deleteErr  error

	listCalls  int
	scopeCalls []ident.ID
}

func (f *fakeAttendanceRepo) List(ctx context.Context, date string) ([]attendance.Attendance, error) {
	f.listCalls++
	return f.all, f.listErr
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, id ident.ID, month string) ([]attendance.Attendance, error) {
	f.scopeCalls = append(f.scopeCalls, id)
	return f.byEmployee[id], f.listErr
}

func (f *fakeAttendanceRepo) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.Attendance, error) {
	return f.marked, f.markErr
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id ident.ID) error {
	return f.deleteErr
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	list []employee.Employee
	err  error
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return f.list, f.err
}

var (
	ann = employee.Employee{ID: "1", EmployeeCode: "EMP001", FullName: "Ann Lee", Department: employee.DepartmentHR}
	bob = employee.Employee{ID: "2", EmployeeCode: "EMP002", FullName: "Bob Stone", Department: employee.DepartmentSales}

	annJan1 = attendance.Attendance{ID: "10", EmployeeID: "1", EmployeeCode: "EMP001", Date: "2024-01-01", Status: attendance.StatusPresent}
	annJan2 = attendance.Attendance{ID: "11", EmployeeID: "1", EmployeeCode: "EMP001", Date: "2024-01-02", Status: attendance.StatusAbsent}
	bobJan1 = attendance.Attendance{ID: "20", EmployeeID: "2", EmployeeCode: "EMP002", Date: "2024-01-01", Status: attendance.StatusPresent}
)

func fixedNow() time.Time {
	return time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)
}

func newService(t *testing.T, repo *fakeAttendanceRepo) (*AttendanceServiceImpl, *store.Records) {
	t.Helper()
	records := store.NewRecords()
	emps := &fakeEmployeeRepo{list: []employee.Employee{ann, bob}}
	svc := NewAttendanceService(repo, emps, records, fixedNow, time.UTC).(*AttendanceServiceImpl)
	return svc, records
}

func newRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		all: []attendance.Attendance{annJan1, annJan2, bobJan1},
		byEmployee: map[ident.ID][]attendance.Attendance{
			"1": {annJan1, annJan2},
			"2": {bobJan1},
		},
	}
}

func TestAttendanceService_Load(t *testing.T) {
	repo := newRepo()
	svc, records := newService(t, repo)

	view, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "All Attendance Records", view.Title)
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, []employee.Employee{ann, bob}, view.Employees)
	assert.Equal(t, "2024-01-03", view.FormDefaults.Date)
	assert.Equal(t, attendance.StatusPresent, view.FormDefaults.Status)
	assert.True(t, view.Loaded)
	assert.False(t, view.Loading)

	assert.Len(t, records.Attendance.Items(), 3)
}

func TestAttendanceService_LoadFailure(t *testing.T) {
	repo := newRepo()
	repo.listErr = &hrmsapi.APIError{Op: "list attendance", StatusCode: 500, Message: "database unavailable"}
	svc, _ := newService(t, repo)

	view, err := svc.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, "database unavailable", view.Error)
	assert.Empty(t, view.Records)
	assert.Len(t, view.Employees, 2)
}

func TestAttendanceService_ChangeFilter(t *testing.T) {
	repo := newRepo()
	svc, _ := newService(t, repo)
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	// Date bounds alone never hit the API.
	view, err := svc.ChangeFilter(context.Background(), attendance.AttendanceFilter{StartDate: "2024-01-02"})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, []attendance.Attendance{annJan2}, view.Records)
	assert.Equal(t, 3, view.Total)

	// A new employee scope is resolved by the API.
	view, err = svc.ChangeFilter(context.Background(), attendance.AttendanceFilter{EmployeeID: "1", EndDate: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, []ident.ID{"1"}, repo.scopeCalls)
	assert.Equal(t, "Attendance for Ann Lee", view.Title)
	assert.Equal(t, []attendance.Attendance{annJan1}, view.Records)

	_, err = svc.ChangeFilter(context.Background(), attendance.AttendanceFilter{StartDate: "01/02/2024"})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))

	view, err = svc.ClearFilter(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
	assert.Len(t, view.Records, 3)
	assert.Equal(t, attendance.DefaultFilter(), view.Filter)
}

func TestAttendanceService_ChangeFilterFailureKeepsScope(t *testing.T) {
	repo := newRepo()
	svc, _ := newService(t, repo)
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	repo.listErr = errors.New("connection reset")
	view, err := svc.ChangeFilter(context.Background(), attendance.AttendanceFilter{EmployeeID: "2"})
	require.Error(t, err)
	assert.Equal(t, "All Attendance Records", view.Title)
	assert.Equal(t, attendance.DefaultFilter(), view.Filter)
	assert.Len(t, view.Records, 3)
	assert.Equal(t, "Failed to fetch attendance records", view.Error)

	repo.listErr = nil
	view, err = svc.ChangeFilter(context.Background(), attendance.AttendanceFilter{EmployeeID: "2"})
	require.NoError(t, err)
	assert.Equal(t, []ident.ID{"2", "2"}, repo.scopeCalls)
	assert.Equal(t, "Attendance for Bob Stone", view.Title)
	assert.Equal(t, []attendance.Attendance{bobJan1}, view.Records)
	assert.Empty(t, view.Error)
}

func TestAttendanceService_MarkRefetches(t *testing.T) {
	repo := newRepo()
	svc, _ := newService(t, repo)
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	bobJan2 := attendance.Attendance{ID: "21", EmployeeID: "2", EmployeeCode: "EMP002", Date: "2024-01-02", Status: attendance.StatusAbsent}
	repo.marked = bobJan2
	repo.all = append([]attendance.Attendance{bobJan2}, repo.all...)

	view, err := svc.Mark(context.Background(), attendance.MarkAttendanceRequest{EmployeeID: "2", Date: "2024-01-02", Status: attendance.StatusAbsent})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
	assert.Len(t, view.Records, 4)
	assert.Equal(t, bobJan2, view.Records[0])
	assert.False(t, view.Submitting)
}

func TestAttendanceService_MarkMergesWhenRefetchFails(t *testing.T) {
	repo := newRepo()
	svc, records := newService(t, repo)
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	changed := annJan1
	changed.ID = "12"
	changed.Status = attendance.StatusAbsent
	repo.marked = changed
	repo.listErr = errors.New("connection reset")

	view, err := svc.Mark(context.Background(), attendance.MarkAttendanceRequest{EmployeeID: "1", Date: "2024-01-01", Status: attendance.StatusAbsent})
	require.NoError(t, err)

	assert.Len(t, view.Records, 3)
	assert.Equal(t, changed, view.Records[0])

	held := records.Attendance.Items()
	assert.Len(t, held, 3)
	assert.Contains(t, held, changed)
	assert.NotContains(t, held, annJan1)
}

func TestAttendanceService_MarkFailure(t *testing.T) {
	repo := newRepo()
	repo.markErr = &hrmsapi.APIError{Op: "mark attendance", StatusCode: 404, Message: "Employee not found"}
	svc, _ := newService(t, repo)

	view, err := svc.Mark(context.Background(), attendance.MarkAttendanceRequest{EmployeeID: "9", Date: "2024-01-01", Status: attendance.StatusPresent})
	require.Error(t, err)
	assert.Equal(t, "Employee not found", view.SubmitError)
	assert.False(t, view.Submitting)
}

func TestAttendanceService_MarkValidation(t *testing.T) {
	repo := newRepo()
	svc, _ := newService(t, repo)

	_, err := svc.Mark(context.Background(), attendance.MarkAttendanceRequest{Date: "2024-13-01", Status: "Late"})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 3)
}

func TestAttendanceService_Delete(t *testing.T) {
	repo := newRepo()
	svc, _ := newService(t, repo)
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	repo.all = []attendance.Attendance{annJan1, bobJan1}
	view, err := svc.Delete(context.Background(), annJan2.ID)
	require.NoError(t, err)
	assert.Equal(t, []attendance.Attendance{annJan1, bobJan1}, view.Records)
	assert.Empty(t, view.DeletingID)
}

func TestAttendanceService_DeleteRemovesWhenRefetchFails(t *testing.T) {
	repo := newRepo()
	svc, _ := newService(t, repo)
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	repo.listErr = errors.New("timeout")
	view, err := svc.Delete(context.Background(), annJan2.ID)
	require.NoError(t, err)
	assert.Equal(t, []attendance.Attendance{annJan1, bobJan1}, view.Records)
}

func TestAttendanceService_DeleteFailure(t *testing.T) {
	repo := newRepo()
	svc, _ := newService(t, repo)
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	repo.deleteErr = &hrmsapi.TransportError{Op: "delete attendance", Err: errors.New("")}
	view, err := svc.Delete(context.Background(), annJan2.ID)
	require.Error(t, err)
	assert.Equal(t, "Failed to delete attendance record", view.Error)
	assert.Len(t, view.Records, 3)
}
