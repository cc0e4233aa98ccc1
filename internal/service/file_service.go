package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stemsi/perfdash/internal/client"
	"github.com/stemsi/perfdash/internal/model"
)

// Sentinel errors for imports and exports.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrInvalidRecordType   = errors.New("invalid record type")
	ErrInvalidExportFormat = errors.New("invalid export format")
	ErrInvalidYear         = errors.New("invalid year")
)

// Allowed import extensions.
var allowedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".json": true,
}

// ExportFile is an export ready to be streamed to the browser.
type ExportFile struct {
	*client.Download
	Filename string
}

// FileService handles data file imports and exports.
type FileService struct {
	transfer       FileTransfer
	invalidator    CacheInvalidator
	maxUploadBytes int64
	log            zerolog.Logger
}

// NewFileService creates a new FileService. invalidator may be nil.
func NewFileService(transfer FileTransfer, invalidator CacheInvalidator, maxUploadBytes int64, log zerolog.Logger) *FileService {
	return &FileService{
		transfer:       transfer,
		invalidator:    invalidator,
		maxUploadBytes: maxUploadBytes,
		log:            log.With().Str("component", "file_service").Logger(),
	}
}

// Import validates an uploaded data file and forwards it to the performance
// API. Cached upstream data is dropped after a successful import.
func (s *FileService) Import(ctx context.Context, recordType model.RecordType, filename string, size int64, r io.Reader) (*model.ImportResult, error) {
	if !recordType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRecordType, recordType)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: %q (allowed: csv, xlsx, json)", ErrUnsupportedFileType, ext)
	}

	if size > s.maxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, size, s.maxUploadBytes)
	}

	result, err := s.transfer.UploadFile(ctx, recordType, filepath.Base(filename), r)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("type", string(recordType)).
		Int("added", result.AddedCount).
		Int("skipped", result.SkippedCount).
		Msg("Data file imported")

	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Msg("Failed to invalidate cache after import")
		}
	}

	return result, nil
}

// ExportStudent streams one student's records in the requested format.
func (s *FileService) ExportStudent(ctx context.Context, studentID int, format string) (*ExportFile, error) {
	f, ok := model.ParseExportFormat(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidExportFormat, format)
	}

	dl, err := s.transfer.ExportStudent(ctx, studentID, f)
	if err != nil {
		return nil, err
	}
	return newExportFile(dl, f, fmt.Sprintf("student_%d_export.%s", studentID, f)), nil
}

// ExportAll streams every student's records, optionally filtered by
// department and year of study.
func (s *FileService) ExportAll(ctx context.Context, format, department, year string) (*ExportFile, error) {
	f, ok := model.ParseExportFormat(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidExportFormat, format)
	}

	var y int
	if year = strings.TrimSpace(year); year != "" {
		n, err := strconv.Atoi(year)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidYear, year)
		}
		y = n
	}

	dl, err := s.transfer.ExportAll(ctx, f, strings.TrimSpace(department), y)
	if err != nil {
		return nil, err
	}
	return newExportFile(dl, f, fmt.Sprintf("students_export.%s", f)), nil
}

func newExportFile(dl *client.Download, f model.ExportFormat, filename string) *ExportFile {
	if dl.ContentType == "" {
		dl.ContentType = f.ContentType()
	}
	return &ExportFile{Download: dl, Filename: filename}
}
