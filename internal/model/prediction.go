package model

// MetricTrend describes the direction of one predicted metric.
type MetricTrend struct {
	Trend       float64 `json:"trend"`
	Description string  `json:"description"`
}

// PredictionConfidence is the prediction service's self-reported confidence.
type PredictionConfidence struct {
	Percentage float64 `json:"percentage"`
	Level      string  `json:"level"`
}

// PredictionResult is produced by the external prediction service. Its
// numbers are opaque to this application and only displayed.
type PredictionResult struct {
	PredictedOverallScore float64                `json:"predicted_overall_score"`
	PredictedMetrics      map[string]float64     `json:"predicted_metrics"`
	Trends                map[string]MetricTrend `json:"trends"`
	Outlook               string                 `json:"outlook"`
	PredictionConfidence  PredictionConfidence   `json:"prediction_confidence"`
}

// Improvement is one recommendation. Scores are nil for qualitative areas.
type Improvement struct {
	Area           string   `json:"area"`
	CurrentScore   *float64 `json:"current_score"`
	TargetScore    *float64 `json:"target_score"`
	Recommendation string   `json:"recommendation"`
	Details        string   `json:"details"`
	Priority       string   `json:"priority"`
}

// ImprovementPlan is the recommendation collection for one student.
type ImprovementPlan struct {
	Recommendations      []Improvement `json:"recommendations"`
	TotalRecommendations int           `json:"total_recommendations"`
}
