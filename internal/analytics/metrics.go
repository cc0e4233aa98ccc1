package analytics

import (
	"math"

	"github.com/stemsi/perfdash/internal/model"
)

// Band labels used by score badges and the prediction gauge.
const (
	BandExcellent = "excellent"
	BandGood      = "good"
	BandFair      = "fair"
	BandPoor      = "poor"
)

// Trend labels.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendSteady    = "steady"
)

// Round1 rounds x to one decimal place, halves away from zero.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// PresentCount counts records with status present.
func PresentCount(records []model.AttendanceRecord) int {
	n := 0
	for _, r := range records {
		if r.Status == model.AttendancePresent {
			n++
		}
	}
	return n
}

// AttendancePercentage is the share of present marks across all records,
// rounded to one decimal. Empty input yields 0.
func AttendancePercentage(records []model.AttendanceRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	return Round1(float64(PresentCount(records)) / float64(len(records)) * 100)
}

// AverageExamScore is the mean exam percentage across all exams, rounded to
// one decimal. Empty input yields 0.
func AverageExamScore(exams []model.ExamRecord) float64 {
	return Round1(meanPercentage(exams))
}

// ProjectScore is the mean grade percentage over graded projects.
func ProjectScore(projects []model.ProjectRecord) float64 {
	var sum float64
	graded := 0
	for _, p := range projects {
		if !p.Graded() {
			continue
		}
		sum += *p.Grade / *p.MaxGrade * 100
		graded++
	}
	if graded == 0 {
		return 0
	}
	return Round1(sum / float64(graded))
}

// CertificationScore awards 10 points per certification, capped at 100.
func CertificationScore(certs []model.CertificationRecord) float64 {
	return math.Min(float64(len(certs))*10, 100)
}

// ScoreBand classifies a single exam percentage.
func ScoreBand(pct float64) string {
	switch {
	case pct >= 90:
		return BandExcellent
	case pct >= 70:
		return BandGood
	case pct >= 50:
		return BandFair
	default:
		return BandPoor
	}
}

// OutlookBand classifies a predicted overall score.
func OutlookBand(pct float64) string {
	switch {
	case pct >= 85:
		return BandExcellent
	case pct >= 70:
		return BandGood
	case pct >= 50:
		return BandFair
	default:
		return BandPoor
	}
}

// TrendDirection names the sign of a trend coefficient.
func TrendDirection(trend float64) string {
	switch {
	case trend > 0:
		return TrendImproving
	case trend < 0:
		return TrendDeclining
	default:
		return TrendSteady
	}
}

// activityMetricTypes are the performance metrics that count as extracurricular
// activities (presentations, symposiums, internships).
var activityMetricTypes = map[string]bool{
	"presentation": true,
	"symposium":    true,
	"internship":   true,
}

// ActivityScore is the mean percentage of activity-type performance metrics.
func ActivityScore(metrics []model.PerformanceMetric) float64 {
	var sum float64
	n := 0
	for _, m := range metrics {
		if !activityMetricTypes[m.MetricType] || m.MaxScore <= 0 {
			continue
		}
		sum += m.Score / m.MaxScore * 100
		n++
	}
	if n == 0 {
		return 0
	}
	return Round1(sum / float64(n))
}
