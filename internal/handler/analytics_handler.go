package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/perfdash/internal/response"
	"github.com/stemsi/perfdash/internal/service"
)

// AnalyticsHandler handles cross-student analytics endpoints.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetDepartmentComparison godoc
// GET /api/v1/analytics/departments?department=
func (h *AnalyticsHandler) GetDepartmentComparison(c *gin.Context) {
	department := strings.TrimSpace(c.Query("department"))

	data, err := h.analyticsService.GetDepartmentComparison(c.Request.Context(), department)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, data)
}
