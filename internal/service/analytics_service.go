package service

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/stemsi/perfdash/internal/analytics"
	"github.com/stemsi/perfdash/internal/client"
	"github.com/stemsi/perfdash/internal/model"
)

// DepartmentComparisonData is the department comparison view model.
type DepartmentComparisonData struct {
	Department  string                     `json:"department,omitempty"`
	Departments []analytics.DepartmentStat `json:"departments"`
}

// AnalyticsService handles cross-student analytics.
type AnalyticsService struct {
	students    StudentSource
	performance PerformanceSource
	concurrency int
}

// NewAnalyticsService creates a new AnalyticsService. concurrency bounds the
// number of in-flight bundle fetches.
func NewAnalyticsService(students StudentSource, performance PerformanceSource, concurrency int) *AnalyticsService {
	return &AnalyticsService{students: students, performance: performance, concurrency: concurrency}
}

// GetDepartmentComparison rolls up per-department metrics. A non-empty
// department restricts the rollup to that department.
func (s *AnalyticsService) GetDepartmentComparison(ctx context.Context, department string) (*DepartmentComparisonData, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	students = analytics.FilterStudents(students, "", analytics.StudentFilter{Department: department})

	bundles, err := fetchBundles(ctx, s.performance, students, s.concurrency)
	if err != nil {
		return nil, err
	}

	return &DepartmentComparisonData{
		Department:  department,
		Departments: analytics.DepartmentComparison(students, bundles),
	}, nil
}

// fetchBundles loads the performance bundle of every student concurrently.
// Students the API no longer knows are left out of the result; any other
// failure cancels the remaining fetches.
func fetchBundles(ctx context.Context, src PerformanceSource, students []model.Student, limit int) (map[int]*model.PerformanceBundle, error) {
	var (
		mu      sync.Mutex
		bundles = make(map[int]*model.PerformanceBundle, len(students))
	)

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, st := range students {
		id := st.ID
		g.Go(func() error {
			b, err := src.GetByStudentID(gctx, id)
			if errors.Is(err, client.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			mu.Lock()
			bundles[id] = b
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bundles, nil
}
