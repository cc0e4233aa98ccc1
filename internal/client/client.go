// Package client talks to the external performance API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stemsi/perfdash/internal/model"
)

// Client is a thin JSON client for the performance API. It never retries.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     zerolog.Logger
}

// New creates a Client. baseURL includes the API prefix, e.g.
// http://localhost:5000/api.
//
// timeout bounds every JSON call end to end. Downloads are only bounded
// until the response headers arrive; their body streams for as long as the
// caller's context allows.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = timeout

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: transport},
		timeout: timeout,
		log:     log.With().Str("component", "performance_client").Logger(),
	}
}

// withTimeout bounds a whole request/response cycle.
func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// ListStudents fetches every student.
func (c *Client) ListStudents(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	if err := c.getJSON(ctx, "list_students", "/students", nil, &students); err != nil {
		return nil, err
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

// GetPerformance fetches a student's full performance bundle.
func (c *Client) GetPerformance(ctx context.Context, studentID int) (*model.PerformanceBundle, error) {
	var bundle model.PerformanceBundle
	if err := c.getJSON(ctx, "get_performance", fmt.Sprintf("/performance/student/%d", studentID), nil, &bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}

// GetPrediction fetches the predicted performance of a student.
func (c *Client) GetPrediction(ctx context.Context, studentID int) (*model.PredictionResult, error) {
	var p model.PredictionResult
	if err := c.getJSON(ctx, "get_prediction", fmt.Sprintf("/prediction/future-performance/%d", studentID), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetImprovements fetches the improvement recommendations for a student.
func (c *Client) GetImprovements(ctx context.Context, studentID int) (*model.ImprovementPlan, error) {
	var plan model.ImprovementPlan
	if err := c.getJSON(ctx, "get_improvements", fmt.Sprintf("/prediction/improvements/%d", studentID), nil, &plan); err != nil {
		return nil, err
	}
	if plan.Recommendations == nil {
		plan.Recommendations = []model.Improvement{}
	}
	return &plan, nil
}

// importPayload accepts every counter name the API uses for import results.
type importPayload struct {
	StudentsAdded   *int     `json:"students_added"`
	StudentsSkipped *int     `json:"students_skipped"`
	RecordsAdded    *int     `json:"records_added"`
	RecordsSkipped  *int     `json:"records_skipped"`
	AddedCount      *int     `json:"added_count"`
	SkippedCount    *int     `json:"skipped_count"`
	Errors          []string `json:"errors"`
	ErrorMessages   []string `json:"error_messages"`
}

func firstSet(vals ...*int) int {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

func (p importPayload) result() *model.ImportResult {
	msgs := append(append([]string{}, p.Errors...), p.ErrorMessages...)
	return &model.ImportResult{
		AddedCount:    firstSet(p.AddedCount, p.StudentsAdded, p.RecordsAdded),
		SkippedCount:  firstSet(p.SkippedCount, p.StudentsSkipped, p.RecordsSkipped),
		ErrorMessages: msgs,
	}
}

// UploadFile submits a data file for import as the given record type.
// Row-level failures come back in ImportResult.ErrorMessages, not as an error.
func (c *Client) UploadFile(ctx context.Context, recordType model.RecordType, filename string, r io.Reader) (*model.ImportResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("copy upload: %w", err)
	}
	if err := mw.WriteField("type", string(recordType)); err != nil {
		return nil, fmt.Errorf("write type field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.do(req, "upload_file")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload importPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode import result: %v", ErrUpstream, err)
	}
	return payload.result(), nil
}

// Download is a streamed export. The caller must close Body.
type Download struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// ExportStudent streams one student's data in the given format.
func (c *Client) ExportStudent(ctx context.Context, studentID int, format model.ExportFormat) (*Download, error) {
	q := url.Values{"format": {string(format)}}
	return c.download(ctx, "export_student", fmt.Sprintf("/files/export/%d", studentID), q)
}

// ExportAll streams every student's data, optionally narrowed by department
// and year of study.
func (c *Client) ExportAll(ctx context.Context, format model.ExportFormat, department string, year int) (*Download, error) {
	q := url.Values{"format": {string(format)}}
	if department != "" {
		q.Set("department", department)
	}
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}
	return c.download(ctx, "export_all", "/files/export-all", q)
}

func (c *Client) download(ctx context.Context, op, path string, q url.Values) (*Download, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, q), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.do(req, op)
	if err != nil {
		return nil, err
	}

	return &Download{
		Body:          resp.Body,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, q url.Values, dst interface{}) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, q), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req, op)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUpstream, op, err)
	}
	return nil
}

// do sends req and turns transport failures and non-2xx statuses into
// errors. On success the caller owns resp.Body.
func (c *Client) do(req *http.Request, op string) (*http.Response, error) {
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observe(op, 0, started)
		c.log.Error().Err(err).Str("operation", op).Msg("Upstream request failed")
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstream, op, err)
	}
	observe(op, resp.StatusCode, started)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		apiErr := &APIError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		if resp.StatusCode != http.StatusNotFound {
			c.log.Warn().
				Str("operation", op).
				Int("status", resp.StatusCode).
				Str("message", apiErr.Message).
				Msg("Upstream returned error status")
		}
		return nil, apiErr
	}

	return resp, nil
}

func (c *Client) endpoint(path string, q url.Values) string {
	if len(q) == 0 {
		return c.baseURL + path
	}
	return c.baseURL + path + "?" + q.Encode()
}

// readErrorMessage extracts {"error": "..."} from an error body, if present.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}
