package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/stemsi/perfdash/internal/client"
	"github.com/stemsi/perfdash/internal/model"
)

type mockStudentSource struct{ mock.Mock }

func (m *mockStudentSource) List(ctx context.Context) ([]model.Student, error) {
	args := m.Called(ctx)
	students, _ := args.Get(0).([]model.Student)
	return students, args.Error(1)
}

type mockPerformanceSource struct{ mock.Mock }

func (m *mockPerformanceSource) GetByStudentID(ctx context.Context, studentID int) (*model.PerformanceBundle, error) {
	args := m.Called(ctx, studentID)
	b, _ := args.Get(0).(*model.PerformanceBundle)
	return b, args.Error(1)
}

type mockPredictionSource struct{ mock.Mock }

func (m *mockPredictionSource) GetPrediction(ctx context.Context, studentID int) (*model.PredictionResult, error) {
	args := m.Called(ctx, studentID)
	p, _ := args.Get(0).(*model.PredictionResult)
	return p, args.Error(1)
}

func (m *mockPredictionSource) GetImprovements(ctx context.Context, studentID int) (*model.ImprovementPlan, error) {
	args := m.Called(ctx, studentID)
	p, _ := args.Get(0).(*model.ImprovementPlan)
	return p, args.Error(1)
}

type mockFileTransfer struct{ mock.Mock }

func (m *mockFileTransfer) UploadFile(ctx context.Context, recordType model.RecordType, filename string, r io.Reader) (*model.ImportResult, error) {
	args := m.Called(ctx, recordType, filename, r)
	res, _ := args.Get(0).(*model.ImportResult)
	return res, args.Error(1)
}

func (m *mockFileTransfer) ExportStudent(ctx context.Context, studentID int, format model.ExportFormat) (*client.Download, error) {
	args := m.Called(ctx, studentID, format)
	dl, _ := args.Get(0).(*client.Download)
	return dl, args.Error(1)
}

func (m *mockFileTransfer) ExportAll(ctx context.Context, format model.ExportFormat, department string, year int) (*client.Download, error) {
	args := m.Called(ctx, format, department, year)
	dl, _ := args.Get(0).(*client.Download)
	return dl, args.Error(1)
}

type mockInvalidator struct{ mock.Mock }

func (m *mockInvalidator) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func testRoster() []model.Student {
	return []model.Student{
		{ID: 1, StudentID: "CS001", FirstName: "Ada", LastName: "Lovelace", Department: "Computer Science", YearOfStudy: 2, Semester: 1},
		{ID: 2, StudentID: "CS002", FirstName: "Alan", LastName: "Turing", Department: "Computer Science", YearOfStudy: 3, Semester: 2},
		{ID: 3, StudentID: "ME001", FirstName: "Nikola", LastName: "Tesla", Department: "Mechanical", YearOfStudy: 2, Semester: 1},
	}
}

func floatPtr(f float64) *float64 { return &f }

func testBundle(s model.Student) *model.PerformanceBundle {
	return &model.PerformanceBundle{
		Student: s,
		Attendance: []model.AttendanceRecord{
			{Subject: "Math", Status: model.AttendancePresent},
			{Subject: "Math", Status: model.AttendanceAbsent},
			{Subject: "Physics", Status: model.AttendancePresent},
			{Subject: "Physics", Status: model.AttendancePresent},
		},
		Exams: []model.ExamRecord{
			{Subject: "Math", ExamType: "midterm", Score: 45, MaxScore: 50},
			{Subject: "Physics", ExamType: "final", Score: 70, MaxScore: 100},
		},
		Projects: []model.ProjectRecord{
			{Title: "Compiler", Grade: floatPtr(80), MaxGrade: floatPtr(100)},
			{Title: "Robot"},
		},
		Certifications: []model.CertificationRecord{{Name: "Go"}},
	}
}
