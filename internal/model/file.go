package model

import "strings"

// RecordType is the category a data file is imported as.
type RecordType string

const (
	RecordStudents       RecordType = "students"
	RecordAttendance     RecordType = "attendance"
	RecordExams          RecordType = "exams"
	RecordCertifications RecordType = "certifications"
	RecordProjects       RecordType = "projects"
)

// Valid reports whether t is a known record type.
func (t RecordType) Valid() bool {
	switch t {
	case RecordStudents, RecordAttendance, RecordExams, RecordCertifications, RecordProjects:
		return true
	}
	return false
}

// ExportFormat is the file format requested for an export.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// ParseExportFormat normalises s. Empty input defaults to JSON.
func ParseExportFormat(s string) (ExportFormat, bool) {
	f := ExportFormat(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatJSON, true
	}
	switch f {
	case FormatJSON, FormatCSV, FormatXLSX:
		return f, true
	}
	return "", false
}

// ContentType returns the MIME type of a file in this format.
func (f ExportFormat) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// ImportResult summarises a file import.
type ImportResult struct {
	AddedCount    int      `json:"added_count"`
	SkippedCount  int      `json:"skipped_count"`
	ErrorMessages []string `json:"error_messages"`
}

// UploadForm is the non-file part of an import upload.
type UploadForm struct {
	Type RecordType `form:"type" json:"type" binding:"required"`
}
