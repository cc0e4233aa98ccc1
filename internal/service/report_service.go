package service

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/stemsi/perfdash/internal/analytics"
	"github.com/stemsi/perfdash/internal/model"
)

const (
	rosterSheet      = "Roster"
	departmentsSheet = "Departments"
)

var (
	rosterHeader = []interface{}{
		"Student ID", "Name", "Department", "Year", "Semester",
		"Attendance %", "Average Exam %", "Band",
	}
	departmentsHeader = []interface{}{
		"Department", "Students", "Avg Attendance %", "Avg Exam %",
		"Certifications", "Avg Certifications", "Projects", "Avg Projects",
	}
)

// ReportService renders spreadsheet reports locally.
type ReportService struct {
	students    StudentSource
	performance PerformanceSource
	concurrency int
	log         zerolog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(students StudentSource, performance PerformanceSource, concurrency int, log zerolog.Logger) *ReportService {
	return &ReportService{
		students:    students,
		performance: performance,
		concurrency: concurrency,
		log:         log.With().Str("component", "report_service").Logger(),
	}
}

// RosterWorkbook writes an xlsx workbook of the filtered roster to w. The
// first sheet lists each student with their headline metrics, the second
// holds the department comparison of the same students.
func (s *ReportService) RosterWorkbook(ctx context.Context, q model.DashboardQuery, w io.Writer) error {
	students, err := s.students.List(ctx)
	if err != nil {
		return err
	}
	students = analytics.FilterStudents(students, q.Query, analytics.StudentFilter{
		Department: q.Department,
		Year:       q.Year,
	})

	bundles, err := fetchBundles(ctx, s.performance, students, s.concurrency)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Warn().Err(err).Msg("Failed to close workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(departmentsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	rows := make([][]interface{}, 0, len(students))
	for _, st := range students {
		row := []interface{}{st.StudentID, st.FullName(), st.Department, st.YearOfStudy, st.Semester}
		if b, ok := bundles[st.ID]; ok {
			avg := analytics.AverageExamScore(b.Exams)
			row = append(row, analytics.AttendancePercentage(b.Attendance), avg, analytics.ScoreBand(avg))
		}
		rows = append(rows, row)
	}
	if err := writeSheet(f, rosterSheet, header, rosterHeader, rows); err != nil {
		return err
	}

	stats := analytics.DepartmentComparison(students, bundles)
	rows = rows[:0]
	for _, d := range stats {
		rows = append(rows, []interface{}{
			d.Department, d.TotalStudents, d.AvgAttendance, d.AvgExamScore,
			d.TotalCertifications, d.AvgCertifications, d.TotalProjects, d.AvgProjects,
		})
	}
	if err := writeSheet(f, departmentsSheet, header, departmentsHeader, rows); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	s.log.Debug().Int("students", len(students)).Int("departments", len(stats)).Msg("Roster workbook written")
	return nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 18)
}
