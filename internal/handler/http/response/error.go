package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/hrmsapi"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
)

// HandleError maps domain and gateway errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	HandleViewError(w, err, nil)
}

// HandleViewError is HandleError with the page view attached as data.
func HandleViewError(w http.ResponseWriter, err error, view interface{}) {
	status, detail := classify(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "status", status, "error", err)
	}

	switch detail.Code {
	case "VALIDATION_ERROR":
		ValidationError(w, detail.Details, detail.Messages, view)
	case "NOT_FOUND":
		NotFound(w, detail.Message, view)
	case "CONFLICT":
		Conflict(w, detail.Message, view)
	case "BAD_GATEWAY":
		BadGateway(w, detail.Message, view)
	case "INTERNAL_SERVER_ERROR":
		InternalServerError(w, detail.Message, view)
	default:
		Fail(w, status, detail, view)
	}
}

func classify(err error) (int, ErrorDetail) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusUnprocessableEntity, ErrorDetail{
			Code:     "VALIDATION_ERROR",
			Message:  "Validation failed",
			Details:  validationErrs.ToMap(),
			Messages: validationErrs.Messages(),
		}
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return http.StatusNotFound, ErrorDetail{Code: "NOT_FOUND", Message: "Employee not found"}
	case errors.Is(err, employee.ErrEmployeeCodeImmutable):
		return http.StatusConflict, ErrorDetail{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, employee.ErrInvalidDepartmentScope):
		return http.StatusBadRequest, ErrorDetail{Code: "BAD_REQUEST", Message: err.Error()}

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		return http.StatusNotFound, ErrorDetail{Code: "NOT_FOUND", Message: "Attendance record not found"}
	case errors.Is(err, attendance.ErrInvalidDateFilter), errors.Is(err, attendance.ErrInvalidMonth):
		return http.StatusBadRequest, ErrorDetail{Code: "BAD_REQUEST", Message: err.Error()}
	}

	// HRMS API errors
	var apiErr *hrmsapi.APIError
	if errors.As(err, &apiErr) {
		message := hrmsapi.UserMessage(apiErr, "HRMS API rejected the request")
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode, ErrorDetail{Code: "UPSTREAM_REJECTED", Message: message}
		}
		return http.StatusBadGateway, ErrorDetail{Code: "UPSTREAM_REJECTED", Message: message}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, ErrorDetail{Code: "GATEWAY_TIMEOUT", Message: "HRMS API did not respond in time"}
	}

	var transportErr *hrmsapi.TransportError
	if errors.As(err, &transportErr) {
		return http.StatusBadGateway, ErrorDetail{
			Code:    "BAD_GATEWAY",
			Message: hrmsapi.UserMessage(transportErr, "HRMS API is unavailable"),
		}
	}

	// Default
	return http.StatusInternalServerError, ErrorDetail{Code: "INTERNAL_SERVER_ERROR", Message: "An unexpected error occurred"}
}
