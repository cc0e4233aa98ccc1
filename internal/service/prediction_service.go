package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/stemsi/perfdash/internal/analytics"
	"github.com/stemsi/perfdash/internal/model"
)

// PredictionView is a prediction with its improvement plan and the display
// hints the gauge and trend chips need.
type PredictionView struct {
	StudentID       int                    `json:"student_id"`
	Prediction      *model.PredictionResult `json:"prediction"`
	Improvements    *model.ImprovementPlan  `json:"improvements"`
	OutlookBand     string                 `json:"outlook_band"`
	TrendDirections map[string]string      `json:"trend_directions"`
}

// PredictionService handles the prediction page.
type PredictionService struct {
	students    StudentSource
	predictions PredictionSource
}

// NewPredictionService creates a new PredictionService.
func NewPredictionService(students StudentSource, predictions PredictionSource) *PredictionService {
	return &PredictionService{students: students, predictions: predictions}
}

// ListCandidates returns the options of the student picker.
func (s *PredictionService) ListCandidates(ctx context.Context) ([]model.StudentOption, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]model.StudentOption, 0, len(students))
	for _, st := range students {
		options = append(options, model.StudentOption{
			ID:         st.ID,
			Name:       st.FullName(),
			Department: st.Department,
		})
	}
	return options, nil
}

// GetPrediction fetches the prediction and the improvement plan in parallel.
func (s *PredictionService) GetPrediction(ctx context.Context, studentID int) (*PredictionView, error) {
	var (
		prediction   *model.PredictionResult
		improvements *model.ImprovementPlan
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		prediction, err = s.predictions.GetPrediction(gctx, studentID)
		return err
	})
	g.Go(func() error {
		var err error
		improvements, err = s.predictions.GetImprovements(gctx, studentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	directions := make(map[string]string, len(prediction.Trends))
	for metric, t := range prediction.Trends {
		directions[metric] = analytics.TrendDirection(t.Trend)
	}
	if improvements.Recommendations == nil {
		improvements.Recommendations = []model.Improvement{}
	}

	return &PredictionView{
		StudentID:       studentID,
		Prediction:      prediction,
		Improvements:    improvements,
		OutlookBand:     analytics.OutlookBand(prediction.PredictedOverallScore),
		TrendDirections: directions,
	}, nil
}
