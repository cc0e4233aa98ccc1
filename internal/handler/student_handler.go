package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/perfdash/internal/model"
	"github.com/stemsi/perfdash/internal/response"
	"github.com/stemsi/perfdash/internal/service"
	"github.com/stemsi/perfdash/internal/validator"
)

// StudentHandler handles the student detail endpoint.
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// GetStudent godoc
// GET /api/v1/students/:id?tab=
// Returns the student's overview metrics and the section of the selected tab.
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var q model.StudentViewQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.studentService.GetStudentView(c.Request.Context(), id, q.Tab)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// parseID reads the :id path parameter, responding 400 when it is not a
// positive integer.
func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}
