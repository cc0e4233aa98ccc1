package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/perfdash/internal/model"
	"github.com/stemsi/perfdash/internal/response"
	"github.com/stemsi/perfdash/internal/service"
	"github.com/stemsi/perfdash/internal/validator"
)

// DashboardHandler handles the roster dashboard endpoint.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard godoc
// GET /api/v1/dashboard?q=&department=&year=
// Returns summary stat cards, filter facets, and the students matching the search.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	var q model.DashboardQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	data, err := h.dashboardService.GetDashboard(c.Request.Context(), q)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, data)
}
