package hrmsapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/ident"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
)

type attendanceRepositoryImpl struct {
	client *Client
}

func NewAttendanceRepository(client *Client) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{client: client}
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, date string) ([]attendance.Attendance, error) {
	query := url.Values{}
	if date != "" {
		if _, ok := validator.IsValidDate(date); !ok {
			return nil, attendance.ErrInvalidDateFilter
		}
		query.Set("date", date)
	}

	records := make([]attendance.Attendance, 0)
	err := r.client.do(ctx, "list attendance", http.MethodGet, r.client.endpoint(query, "attendance"), nil, &records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID ident.ID, month string) ([]attendance.Attendance, error) {
	query := url.Values{}
	if month != "" {
		if !validator.IsValidMonth(month) {
			return nil, attendance.ErrInvalidMonth
		}
		query.Set("month", month)
	}

	records := make([]attendance.Attendance, 0)
	endpoint := r.client.endpoint(query, "attendance", "employee", employeeID.String())
	err := r.client.do(ctx, "list attendance by employee", http.MethodGet, endpoint, nil, &records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Mark implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.Attendance, error) {
	var record attendance.Attendance
	err := r.client.do(ctx, "mark attendance", http.MethodPost, r.client.endpoint(nil, "attendance"), req, &record)
	if err != nil {
		return attendance.Attendance{}, err
	}
	return record, nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id ident.ID) error {
	err := r.client.do(ctx, "delete attendance", http.MethodDelete, r.client.endpoint(nil, "attendance", id.String()), nil, nil)
	if err != nil {
		return notFound(err, attendance.ErrAttendanceNotFound)
	}
	return nil
}
