package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/perfdash/internal/model"
	"github.com/stemsi/perfdash/internal/response"
	"github.com/stemsi/perfdash/internal/service"
	"github.com/stemsi/perfdash/internal/validator"
)

// uploadFormOverhead is the room left for multipart boundaries and the
// non-file fields on top of the file size limit.
const uploadFormOverhead = 64 << 10

// FileHandler handles data file import and export endpoints.
type FileHandler struct {
	fileService    *service.FileService
	maxUploadBytes int64
}

// NewFileHandler creates a new FileHandler. Request bodies larger than
// maxUploadBytes plus form overhead are cut off while reading; zero or less
// disables the cap.
func NewFileHandler(fileService *service.FileService, maxUploadBytes int64) *FileHandler {
	return &FileHandler{fileService: fileService, maxUploadBytes: maxUploadBytes}
}

// Upload godoc
// POST /api/v1/files/upload
// Imports a csv, xlsx or json file of the given record type.
func (h *FileHandler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+uploadFormOverhead)

		// Parse up front so an oversized body is reported as such and not
		// as a missing field.
		if err := c.Request.ParseMultipartForm(h.maxUploadBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				_ = c.Error(err)
				response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
				return
			}
		}
	}

	var form model.UploadForm
	if fields := validator.BindForm(c, &form); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	result, err := h.fileService.Import(c.Request.Context(), form.Type, header.Filename, header.Size, file)
	if err != nil {
		if msg, ok := rejectedByUpstream(err); ok {
			_ = c.Error(err)
			response.FailWithMessage(c, http.StatusBadRequest, response.ErrImportRejected, msg)
			return
		}
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ExportStudent godoc
// GET /api/v1/files/export/:id?format=
// Streams one student's records as a file attachment.
func (h *FileHandler) ExportStudent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	file, err := h.fileService.ExportStudent(c.Request.Context(), id, c.Query("format"))
	if err != nil {
		failWith(c, err)
		return
	}

	sendAttachment(c, file)
}

// ExportAll godoc
// GET /api/v1/files/export-all?format=&department=&year=
// Streams every student's records as a file attachment.
func (h *FileHandler) ExportAll(c *gin.Context) {
	file, err := h.fileService.ExportAll(c.Request.Context(), c.Query("format"), c.Query("department"), c.Query("year"))
	if err != nil {
		failWith(c, err)
		return
	}

	sendAttachment(c, file)
}

func sendAttachment(c *gin.Context, file *service.ExportFile) {
	defer file.Body.Close()

	c.DataFromReader(http.StatusOK, file.ContentLength, file.ContentType, file.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, file.Filename),
	})
}
