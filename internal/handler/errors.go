package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/perfdash/internal/client"
	"github.com/stemsi/perfdash/internal/response"
	"github.com/stemsi/perfdash/internal/service"
)

// failWith maps a service or client error onto the response envelope. Any
// upstream failure surfaces as a generic "try again later" message; the
// underlying cause is attached to the context for the request log.
func failWith(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, client.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrInvalidExportFormat):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidExportFormat)
	case errors.Is(err, service.ErrInvalidRecordType):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidRecordType)
	case errors.Is(err, service.ErrUnsupportedFileType):
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
	case errors.Is(err, service.ErrFileTooLarge):
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
	case errors.Is(err, service.ErrInvalidYear):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"year": "year must be a positive number"})
	case errors.Is(err, client.ErrUpstream):
		response.Fail(c, http.StatusBadGateway, response.ErrUpstreamUnavailable)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// rejectedByUpstream reports whether err is a client-side rejection (4xx
// other than 404) from the performance API, returning its message.
func rejectedByUpstream(err error) (string, bool) {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return "", false
	}
	if apiErr.Status < 400 || apiErr.Status > 499 || apiErr.Status == http.StatusNotFound {
		return "", false
	}
	return apiErr.Message, true
}
