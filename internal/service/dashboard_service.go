package service

import (
	"context"

	"github.com/stemsi/perfdash/internal/analytics"
	"github.com/stemsi/perfdash/internal/model"
)

// DashboardCards are the summary stat cards above the roster.
type DashboardCards struct {
	TotalStudents    int `json:"total_students"`
	TotalDepartments int `json:"total_departments"`
	MatchingStudents int `json:"matching_students"`
}

// Facets are the options offered by the categorical filters.
type Facets struct {
	Departments []string `json:"departments"`
	Years       []int    `json:"years"`
}

// DashboardData is the roster page view model.
type DashboardData struct {
	Cards    DashboardCards       `json:"cards"`
	Facets   Facets               `json:"facets"`
	Filter   model.DashboardQuery `json:"filter"`
	Students []model.Student      `json:"students"`
}

// DashboardService handles the roster page.
type DashboardService struct {
	students StudentSource
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(students StudentSource) *DashboardService {
	return &DashboardService{students: students}
}

// GetDashboard fetches the roster and applies the page's view state to it.
func (s *DashboardService) GetDashboard(ctx context.Context, q model.DashboardQuery) (*DashboardData, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildDashboard(students, q), nil
}

// BuildDashboard derives the roster page view model from a fetched roster.
func BuildDashboard(students []model.Student, q model.DashboardQuery) *DashboardData {
	matching := analytics.FilterStudents(students, q.Query, analytics.StudentFilter{
		Department: q.Department,
		Year:       q.Year,
	})
	departments := analytics.Departments(students)

	return &DashboardData{
		Cards: DashboardCards{
			TotalStudents:    len(students),
			TotalDepartments: len(departments),
			MatchingStudents: len(matching),
		},
		Facets: Facets{
			Departments: departments,
			Years:       analytics.Years(students),
		},
		Filter:   q,
		Students: matching,
	}
}
