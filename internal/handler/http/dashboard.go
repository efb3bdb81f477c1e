package http

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/export"
)

type DashboardHandler interface {
	// GetDashboard returns the derived dashboard figures
	GetDashboard(w http.ResponseWriter, r *http.Request)
	// ExportDashboard downloads the figures as an xlsx workbook
	ExportDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// ensureLoaded fetches both collections unless they are already held.
func (h *dashboardHandlerImpl) ensureLoaded(r *http.Request, refresh bool) (dashboard.DashboardResponse, error) {
	result := h.dashboardService.View()
	if result.Loaded && !refresh {
		return result, nil
	}
	return h.dashboardService.Load(r.Context())
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.ensureLoaded(r, wantsRefresh(r))
	if err != nil {
		response.HandleViewError(w, err, result)
		return
	}

	response.Success(w, result)
}

// ExportDashboard handles GET /dashboard/export
func (h *dashboardHandlerImpl) ExportDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.ensureLoaded(r, wantsRefresh(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data, err := h.dashboardService.Export()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, export.ContentType, fmt.Sprintf("hrms-dashboard-%s.xlsx", result.Today.Date), data)
}
