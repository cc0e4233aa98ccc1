package model

// ExamRecord is one exam result for a student.
type ExamRecord struct {
	ID        int     `json:"id"`
	StudentID int     `json:"student_id"`
	Subject   string  `json:"subject"`
	ExamType  string  `json:"exam_type"`
	Score     float64 `json:"score"`
	MaxScore  float64 `json:"max_score"`
	Date      string  `json:"date"`
}

// Percentage returns score/max_score × 100, or 0 when max_score is not positive.
func (e ExamRecord) Percentage() float64 {
	if e.MaxScore <= 0 {
		return 0
	}
	return e.Score / e.MaxScore * 100
}

// PerformanceMetric is a generic scored activity (presentation, symposium, ...).
type PerformanceMetric struct {
	ID           int     `json:"id"`
	StudentID    int     `json:"student_id"`
	MetricType   string  `json:"metric_type"`
	Subject      string  `json:"subject,omitempty"`
	Score        float64 `json:"score"`
	MaxScore     float64 `json:"max_score"`
	DateRecorded string  `json:"date_recorded"`
	Details      string  `json:"details,omitempty"`
}
