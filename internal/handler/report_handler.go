package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/perfdash/internal/model"
	"github.com/stemsi/perfdash/internal/response"
	"github.com/stemsi/perfdash/internal/service"
	"github.com/stemsi/perfdash/internal/validator"
)

// ReportHandler serves locally generated reports.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RosterWorkbook godoc
// GET /api/v1/reports/roster.xlsx?q=&department=&year=
// Returns an xlsx workbook of the filtered roster and its department comparison.
func (h *ReportHandler) RosterWorkbook(c *gin.Context) {
	var q model.DashboardQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	// Buffered so a mid-build failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := h.reportService.RosterWorkbook(c.Request.Context(), q, &buf); err != nil {
		failWith(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="roster.xlsx"`)
	c.Data(http.StatusOK, model.FormatXLSX.ContentType(), buf.Bytes())
}
