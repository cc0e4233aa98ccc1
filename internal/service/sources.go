package service

import (
	"context"
	"io"

	"github.com/stemsi/perfdash/internal/client"
	"github.com/stemsi/perfdash/internal/model"
)

// StudentSource provides the student roster.
type StudentSource interface {
	List(ctx context.Context) ([]model.Student, error)
}

// PerformanceSource provides per-student performance bundles.
type PerformanceSource interface {
	GetByStudentID(ctx context.Context, studentID int) (*model.PerformanceBundle, error)
}

// PredictionSource provides prediction-service output.
type PredictionSource interface {
	GetPrediction(ctx context.Context, studentID int) (*model.PredictionResult, error)
	GetImprovements(ctx context.Context, studentID int) (*model.ImprovementPlan, error)
}

// FileTransfer forwards imports and exports to the performance API.
type FileTransfer interface {
	UploadFile(ctx context.Context, recordType model.RecordType, filename string, r io.Reader) (*model.ImportResult, error)
	ExportStudent(ctx context.Context, studentID int, format model.ExportFormat) (*client.Download, error)
	ExportAll(ctx context.Context, format model.ExportFormat, department string, year int) (*client.Download, error)
}

// CacheInvalidator drops cached upstream data after a write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}
