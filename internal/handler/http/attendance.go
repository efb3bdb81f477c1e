package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/ident"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ListAttendance(w http.ResponseWriter, r *http.Request)
	RefreshAttendance(w http.ResponseWriter, r *http.Request)
	SetFilter(w http.ResponseWriter, r *http.Request)
	ClearFilter(w http.ResponseWriter, r *http.Request)
	MarkAttendance(w http.ResponseWriter, r *http.Request)
	DeleteAttendance(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// ListAttendance handles GET /attendance
func (h *attendanceHandlerImpl) ListAttendance(w http.ResponseWriter, r *http.Request) {
	view := h.attendanceService.View()
	if !view.Loaded || wantsRefresh(r) {
		var err error
		if view, err = h.attendanceService.Load(r.Context()); err != nil {
			response.HandleViewError(w, err, view)
			return
		}
	}

	response.Success(w, view)
}

// RefreshAttendance handles POST /attendance/refresh
func (h *attendanceHandlerImpl) RefreshAttendance(w http.ResponseWriter, r *http.Request) {
	view, err := h.attendanceService.Load(r.Context())
	if err != nil {
		response.HandleViewError(w, err, view)
		return
	}

	response.Success(w, view)
}

// SetFilter handles PUT /attendance/filter
func (h *attendanceHandlerImpl) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req attendance.AttendanceFilter
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	view, err := h.attendanceService.ChangeFilter(r.Context(), req)
	if err != nil {
		response.HandleViewError(w, err, view)
		return
	}

	response.Success(w, view)
}

// ClearFilter handles DELETE /attendance/filter
func (h *attendanceHandlerImpl) ClearFilter(w http.ResponseWriter, r *http.Request) {
	view, err := h.attendanceService.ClearFilter(r.Context())
	if err != nil {
		response.HandleViewError(w, err, view)
		return
	}

	response.Success(w, view)
}

// MarkAttendance handles POST /attendance
func (h *attendanceHandlerImpl) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	view, err := h.attendanceService.Mark(r.Context(), req)
	if err != nil {
		response.HandleViewError(w, err, view)
		return
	}

	response.Created(w, "Attendance marked successfully", view)
}

// DeleteAttendance handles DELETE /attendance/{id}
func (h *attendanceHandlerImpl) DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Attendance ID is required", nil)
		return
	}

	view, err := h.attendanceService.Delete(r.Context(), ident.ID(id))
	if err != nil {
		response.HandleViewError(w, err, view)
		return
	}

	response.SuccessWithMessage(w, "Attendance record deleted successfully", view)
}
