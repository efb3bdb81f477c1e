package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidDateFilter  = errors.New("date filter must use YYYY-MM-DD")
	ErrInvalidMonth       = errors.New("month must use YYYY-MM")
)
