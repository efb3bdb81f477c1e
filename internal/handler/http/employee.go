package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/ident"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	RefreshEmployees(w http.ResponseWriter, r *http.Request)
	SetFilter(w http.ResponseWriter, r *http.Request)
	ClearFilter(w http.ResponseWriter, r *http.Request)
	SubmitEmployee(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	EditEmployee(w http.ResponseWriter, r *http.Request)
	CancelEdit(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// wantsRefresh reports whether the caller asked for ?refresh=true.
func wantsRefresh(r *http.Request) bool {
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	return refresh
}

// ListEmployees handles GET /employees. The collection is fetched on first
// use or when ?refresh=true is given.
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	view := h.employeeService.View()
	if !view.Loaded || wantsRefresh(r) {
		var err error
		if view, err = h.employeeService.Load(r.Context()); err != nil {
			response.HandleViewError(w, err, view)
			return
		}
	}

	response.Success(w, view)
}

// RefreshEmployees handles POST /employees/refresh
func (h *employeeHandlerImpl) RefreshEmployees(w http.ResponseWriter, r *http.Request) {
	view, err := h.employeeService.Load(r.Context())
	if err != nil {
		response.HandleViewError(w, err, view)
		return
	}

	response.Success(w, view)
}

// SetFilter handles PUT /employees/filter
func (h *employeeHandlerImpl) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req employee.EmployeeFilter
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	view, err := h.employeeService.ChangeFilter(req)
	if err != nil {
		response.HandleViewError(w, err, view)
		return
	}

	response.Success(w, view)
}

// ClearFilter handles DELETE /employees/filter
func (h *employeeHandlerImpl) ClearFilter(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.employeeService.ClearFilter())
}

// SubmitEmployee handles POST /employees. It creates an employee, or
// updates the one selected with EditEmployee.
func (h *employeeHandlerImpl) SubmitEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	editing := h.employeeService.View().Editing != nil

	view, err := h.employeeService.Submit(r.Context(), req)
	if err != nil {
		response.HandleViewError(w, err, view)
		return
	}

	if editing {
		response.SuccessWithMessage(w, "Employee updated successfully", view)
		return
	}
	response.Created(w, "Employee created successfully", view)
}

// GetEmployee handles GET /employees/{id}
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.employeeService.GetEmployee(r.Context(), ident.ID(id))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EditEmployee handles POST /employees/{id}/edit
func (h *employeeHandlerImpl) EditEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	view, err := h.employeeService.RequestEdit(ident.ID(id))
	if err != nil {
		response.HandleViewError(w, err, view)
		return
	}

	response.Success(w, view)
}

// CancelEdit handles DELETE /employees/edit
func (h *employeeHandlerImpl) CancelEdit(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.employeeService.CancelEdit())
}

// DeleteEmployee handles DELETE /employees/{id}
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	view, err := h.employeeService.Delete(r.Context(), ident.ID(id))
	if err != nil {
		response.HandleViewError(w, err, view)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", view)
}
