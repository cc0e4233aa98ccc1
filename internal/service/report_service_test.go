package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/stemsi/perfdash/internal/model"
)

func TestRosterWorkbook(t *testing.T) {
	roster := testRoster()
	students := new(mockStudentSource)
	students.On("List", mock.Anything).Return(roster, nil)
	perf := new(mockPerformanceSource)
	perf.On("GetByStudentID", mock.Anything, 1).Return(testBundle(roster[0]), nil)
	perf.On("GetByStudentID", mock.Anything, 2).Return(testBundle(roster[1]), nil)

	svc := NewReportService(students, perf, 2, zerolog.Nop())

	var buf bytes.Buffer
	err := svc.RosterWorkbook(context.Background(), model.DashboardQuery{Department: "Computer Science"}, &buf)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{rosterSheet, departmentsSheet}, f.GetSheetList())

	rows, err := f.GetRows(rosterSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Student ID", rows[0][0])
	assert.Equal(t, []string{"CS001", "Ada Lovelace", "Computer Science", "2", "1", "75", "80", "good"}, rows[1])

	rows, err = f.GetRows(departmentsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Computer Science", rows[1][0])
	assert.Equal(t, "2", rows[1][1])

	perf.AssertNotCalled(t, "GetByStudentID", mock.Anything, 3)
}
