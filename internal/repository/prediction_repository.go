package repository

import (
	"context"

	"github.com/stemsi/perfdash/internal/client"
	"github.com/stemsi/perfdash/internal/model"
)

// PredictionRepository reads prediction-service output. Predictions are
// never cached.
type PredictionRepository struct {
	api *client.Client
}

// NewPredictionRepository creates a new PredictionRepository.
func NewPredictionRepository(api *client.Client) *PredictionRepository {
	return &PredictionRepository{api: api}
}

func (r *PredictionRepository) GetPrediction(ctx context.Context, studentID int) (*model.PredictionResult, error) {
	return r.api.GetPrediction(ctx, studentID)
}

func (r *PredictionRepository) GetImprovements(ctx context.Context, studentID int) (*model.ImprovementPlan, error) {
	return r.api.GetImprovements(ctx, studentID)
}
