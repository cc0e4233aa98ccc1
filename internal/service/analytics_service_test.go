package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/perfdash/internal/client"
)

func TestGetDepartmentComparison(t *testing.T) {
	roster := testRoster()

	t.Run("all departments", func(t *testing.T) {
		students := new(mockStudentSource)
		students.On("List", mock.Anything).Return(roster, nil)
		perf := new(mockPerformanceSource)
		for _, s := range roster {
			perf.On("GetByStudentID", mock.Anything, s.ID).Return(testBundle(s), nil)
		}

		data, err := NewAnalyticsService(students, perf, 2).GetDepartmentComparison(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, data.Departments, 2)

		cs := data.Departments[0]
		assert.Equal(t, "Computer Science", cs.Department)
		assert.Equal(t, 2, cs.TotalStudents)
		assert.Equal(t, 75.0, cs.AvgAttendance)
		assert.Equal(t, 80.0, cs.AvgExamScore)
		assert.Equal(t, 2, cs.TotalCertifications)
		assert.Equal(t, 4, cs.TotalProjects)
		perf.AssertExpectations(t)
	})

	t.Run("department filter", func(t *testing.T) {
		students := new(mockStudentSource)
		students.On("List", mock.Anything).Return(roster, nil)
		perf := new(mockPerformanceSource)
		perf.On("GetByStudentID", mock.Anything, 3).Return(testBundle(roster[2]), nil)

		data, err := NewAnalyticsService(students, perf, 0).GetDepartmentComparison(context.Background(), "Mechanical")
		require.NoError(t, err)
		require.Len(t, data.Departments, 1)
		assert.Equal(t, "Mechanical", data.Departments[0].Department)
		perf.AssertNotCalled(t, "GetByStudentID", mock.Anything, 1)
	})

	t.Run("missing bundle contributes zeros", func(t *testing.T) {
		students := new(mockStudentSource)
		students.On("List", mock.Anything).Return(roster[:2], nil)
		perf := new(mockPerformanceSource)
		perf.On("GetByStudentID", mock.Anything, 1).Return(testBundle(roster[0]), nil)
		perf.On("GetByStudentID", mock.Anything, 2).Return(nil, client.ErrNotFound)

		data, err := NewAnalyticsService(students, perf, 4).GetDepartmentComparison(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, data.Departments, 1)
		assert.Equal(t, 37.5, data.Departments[0].AvgAttendance)
	})

	t.Run("upstream failure aborts", func(t *testing.T) {
		students := new(mockStudentSource)
		students.On("List", mock.Anything).Return(roster[:1], nil)
		perf := new(mockPerformanceSource)
		perf.On("GetByStudentID", mock.Anything, 1).Return(nil, errors.New("upstream down"))

		_, err := NewAnalyticsService(students, perf, 4).GetDepartmentComparison(context.Background(), "")
		assert.EqualError(t, err, "upstream down")
	})
}
