package service

import (
	"context"

	"github.com/stemsi/perfdash/internal/analytics"
	"github.com/stemsi/perfdash/internal/model"
)

// RadarPoint is one axis of the overview performance chart.
type RadarPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// StudentOverview holds the entity-level metrics shown on every tab.
type StudentOverview struct {
	AttendancePercentage float64      `json:"attendance_percentage"`
	PresentCount         int          `json:"present_count"`
	TotalClasses         int          `json:"total_classes"`
	AverageExamScore     float64      `json:"average_exam_score"`
	ExamCount            int          `json:"exam_count"`
	ProjectCount         int          `json:"project_count"`
	CertificationCount   int          `json:"certification_count"`
	Performance          []RadarPoint `json:"performance"`
}

// AttendanceSection is the attendance tab.
type AttendanceSection struct {
	BySubject []analytics.SubjectStat `json:"by_subject"`
	Records   []model.AttendanceRecord `json:"records"`
}

// ExamRow is an exam with its display percentage and badge.
type ExamRow struct {
	model.ExamRecord
	Percentage float64 `json:"percentage"`
	Band       string  `json:"band"`
}

// ExamSection is the exams tab.
type ExamSection struct {
	BySubject []analytics.SubjectStat `json:"by_subject"`
	Records   []ExamRow               `json:"records"`
}

// ProjectRow is a project with its grade percentage, nil when ungraded.
type ProjectRow struct {
	model.ProjectRecord
	Percentage *float64 `json:"percentage"`
}

// ProjectSection is the projects tab.
type ProjectSection struct {
	Records []ProjectRow `json:"records"`
}

// CertificationSection is the certifications tab.
type CertificationSection struct {
	Records []model.CertificationRecord `json:"records"`
}

// StudentView is the student page view model. Only the section of the
// active tab is populated; it is present even when it has no records.
type StudentView struct {
	Student        model.Student         `json:"student"`
	ActiveTab      model.StudentTab      `json:"active_tab"`
	Overview       StudentOverview       `json:"overview"`
	Attendance     *AttendanceSection    `json:"attendance,omitempty"`
	Exams          *ExamSection          `json:"exams,omitempty"`
	Projects       *ProjectSection       `json:"projects,omitempty"`
	Certifications *CertificationSection `json:"certifications,omitempty"`
}

// StudentService handles the student detail page.
type StudentService struct {
	performance PerformanceSource
}

// NewStudentService creates a new StudentService.
func NewStudentService(performance PerformanceSource) *StudentService {
	return &StudentService{performance: performance}
}

// GetStudentView fetches a student's bundle and renders the requested tab.
func (s *StudentService) GetStudentView(ctx context.Context, studentID int, tab model.StudentTab) (*StudentView, error) {
	bundle, err := s.performance.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return BuildStudentView(bundle, tab), nil
}

// BuildOverview computes the entity-level metrics of a bundle.
func BuildOverview(b *model.PerformanceBundle) StudentOverview {
	attendance := analytics.AttendancePercentage(b.Attendance)
	exams := analytics.AverageExamScore(b.Exams)

	return StudentOverview{
		AttendancePercentage: attendance,
		PresentCount:         analytics.PresentCount(b.Attendance),
		TotalClasses:         len(b.Attendance),
		AverageExamScore:     exams,
		ExamCount:            len(b.Exams),
		ProjectCount:         len(b.Projects),
		CertificationCount:   len(b.Certifications),
		Performance: []RadarPoint{
			{Label: "Attendance", Value: attendance},
			{Label: "Exams", Value: exams},
			{Label: "Projects", Value: analytics.ProjectScore(b.Projects)},
			{Label: "Activities", Value: analytics.ActivityScore(b.PerformanceMetrics)},
			{Label: "Certifications", Value: analytics.CertificationScore(b.Certifications)},
		},
	}
}

// BuildStudentView renders a bundle for the given tab. An empty tab means
// the overview.
func BuildStudentView(b *model.PerformanceBundle, tab model.StudentTab) *StudentView {
	if tab == "" {
		tab = model.TabOverview
	}

	v := &StudentView{
		Student:   b.Student,
		ActiveTab: tab,
		Overview:  BuildOverview(b),
	}

	switch tab {
	case model.TabAttendance:
		records := b.Attendance
		if records == nil {
			records = []model.AttendanceRecord{}
		}
		v.Attendance = &AttendanceSection{
			BySubject: analytics.AttendanceBySubject(b.Attendance),
			Records:   records,
		}
	case model.TabExams:
		rows := make([]ExamRow, 0, len(b.Exams))
		for _, e := range b.Exams {
			pct := analytics.Round1(e.Percentage())
			rows = append(rows, ExamRow{ExamRecord: e, Percentage: pct, Band: analytics.ScoreBand(pct)})
		}
		v.Exams = &ExamSection{
			BySubject: analytics.ExamsBySubject(b.Exams),
			Records:   rows,
		}
	case model.TabProjects:
		rows := make([]ProjectRow, 0, len(b.Projects))
		for _, p := range b.Projects {
			row := ProjectRow{ProjectRecord: p}
			if p.Graded() {
				pct := analytics.Round1(*p.Grade / *p.MaxGrade * 100)
				row.Percentage = &pct
			}
			rows = append(rows, row)
		}
		v.Projects = &ProjectSection{Records: rows}
	case model.TabCertifications:
		records := b.Certifications
		if records == nil {
			records = []model.CertificationRecord{}
		}
		v.Certifications = &CertificationSection{Records: records}
	}

	return v
}
