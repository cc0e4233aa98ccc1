package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/perfdash/internal/response"
	"github.com/stemsi/perfdash/internal/service"
)

// PredictionHandler handles the prediction page endpoints.
type PredictionHandler struct {
	predictionService *service.PredictionService
}

// NewPredictionHandler creates a new PredictionHandler.
func NewPredictionHandler(predictionService *service.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictionService: predictionService}
}

// ListCandidates godoc
// GET /api/v1/predictions/students
// Returns the options of the student picker.
func (h *PredictionHandler) ListCandidates(c *gin.Context) {
	options, err := h.predictionService.ListCandidates(c.Request.Context())
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"students": options})
}

// GetPrediction godoc
// GET /api/v1/predictions/:id
// Returns the predicted performance and the improvement plan of one student.
func (h *PredictionHandler) GetPrediction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	view, err := h.predictionService.GetPrediction(c.Request.Context(), id)
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}
