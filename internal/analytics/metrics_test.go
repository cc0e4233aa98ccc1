package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stemsi/perfdash/internal/model"
)

func TestAttendancePercentage(t *testing.T) {
	records := []model.AttendanceRecord{
		attendance("Math", model.AttendancePresent),
		attendance("Math", model.AttendanceAbsent),
		attendance("Physics", model.AttendancePresent),
	}

	assert.Equal(t, 66.7, AttendancePercentage(records))
	assert.Equal(t, 2, PresentCount(records))
	assert.Equal(t, 0.0, AttendancePercentage(nil))
	assert.Equal(t, 0.0, AttendancePercentage([]model.AttendanceRecord{}))
}

func TestAttendancePercentageBounds(t *testing.T) {
	statuses := []model.AttendanceStatus{model.AttendancePresent, model.AttendanceAbsent, model.AttendanceExcused}
	var records []model.AttendanceRecord
	for i := 0; i < 30; i++ {
		records = append(records, attendance("S", statuses[(i*7)%3]))
		pct := AttendancePercentage(records)
		assert.GreaterOrEqual(t, pct, 0.0)
		assert.LessOrEqual(t, pct, 100.0)
	}
}

func TestAverageExamScore(t *testing.T) {
	exams := []model.ExamRecord{exam("Math", 90, 100), exam("Physics", 45, 50)}
	assert.Equal(t, 90.0, AverageExamScore(exams))
	assert.Equal(t, 0.0, AverageExamScore(nil))

	// (100 + 50 + 33.33...) / 3 = 61.11
	assert.Equal(t, 61.1, AverageExamScore([]model.ExamRecord{
		exam("A", 10, 10), exam("B", 5, 10), exam("C", 1, 3),
	}))
}

func TestAverageExamScoreIgnoresGrouping(t *testing.T) {
	// Whole-collection mean (70) differs from mean of subject means (75).
	exams := []model.ExamRecord{exam("A", 100, 100), exam("B", 60, 100), exam("B", 50, 100)}
	assert.Equal(t, 70.0, AverageExamScore(exams))
}

func TestAverageExamScoreBounds(t *testing.T) {
	var exams []model.ExamRecord
	for i := 0; i <= 20; i++ {
		exams = append(exams, exam("S", float64(i), 20))
		pct := AverageExamScore(exams)
		assert.GreaterOrEqual(t, pct, 0.0)
		assert.LessOrEqual(t, pct, 100.0)
	}
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 66.7, Round1(200.0/3))
	assert.Equal(t, 0.0, Round1(0.04))
	assert.Equal(t, 12.3, Round1(12.34))
}

func TestProjectScore(t *testing.T) {
	g1, m1 := 18.0, 20.0
	g2, m2 := 7.0, 10.0
	projects := []model.ProjectRecord{
		{Title: "graded", Grade: &g1, MaxGrade: &m1},
		{Title: "ungraded"},
		{Title: "graded", Grade: &g2, MaxGrade: &m2},
	}
	assert.Equal(t, 80.0, ProjectScore(projects))
	assert.Equal(t, 0.0, ProjectScore([]model.ProjectRecord{{Title: "ungraded"}}))
}

func TestCertificationScore(t *testing.T) {
	assert.Equal(t, 0.0, CertificationScore(nil))
	assert.Equal(t, 30.0, CertificationScore(make([]model.CertificationRecord, 3)))
	assert.Equal(t, 100.0, CertificationScore(make([]model.CertificationRecord, 14)))
}

func TestBands(t *testing.T) {
	assert.Equal(t, BandExcellent, ScoreBand(90))
	assert.Equal(t, BandGood, ScoreBand(89.9))
	assert.Equal(t, BandFair, ScoreBand(50))
	assert.Equal(t, BandPoor, ScoreBand(49.9))

	assert.Equal(t, BandExcellent, OutlookBand(85))
	assert.Equal(t, BandGood, OutlookBand(82.5))
	assert.Equal(t, BandPoor, OutlookBand(10))
}

func TestTrendDirection(t *testing.T) {
	assert.Equal(t, TrendImproving, TrendDirection(0.5))
	assert.Equal(t, TrendDeclining, TrendDirection(-0.2))
	assert.Equal(t, TrendSteady, TrendDirection(0))
}

func TestActivityScore(t *testing.T) {
	metrics := []model.PerformanceMetric{
		{MetricType: "presentation", Score: 8, MaxScore: 10},
		{MetricType: "symposium", Score: 60, MaxScore: 100},
		{MetricType: "quiz", Score: 1, MaxScore: 10},
		{MetricType: "internship", Score: 5, MaxScore: 0},
	}
	assert.Equal(t, 70.0, ActivityScore(metrics))
	assert.Equal(t, 0.0, ActivityScore(nil))
}
