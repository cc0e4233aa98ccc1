package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/perfdash/internal/client"
	"github.com/stemsi/perfdash/internal/config"
	"github.com/stemsi/perfdash/internal/handler"
	"github.com/stemsi/perfdash/internal/repository"
	"github.com/stemsi/perfdash/internal/service"
	"github.com/stemsi/perfdash/internal/validator"
)

var upstreamStudents = []map[string]interface{}{
	{"id": 1, "student_id": "CS001", "first_name": "Ada", "last_name": "Lovelace", "email": "ada@uni.edu", "department": "Computer Science", "year_of_study": 2, "semester": 1},
	{"id": 2, "student_id": "ME001", "first_name": "Nikola", "last_name": "Tesla", "email": "nikola@uni.edu", "department": "Mechanical", "year_of_study": 3, "semester": 2},
}

func upstreamBundle(id int) map[string]interface{} {
	return map[string]interface{}{
		"student": upstreamStudents[id-1],
		"attendance": []map[string]interface{}{
			{"subject": "Math", "status": "present"},
			{"subject": "Math", "status": "absent"},
		},
		"exams": []map[string]interface{}{
			{"subject": "Math", "exam_type": "final", "score": 45, "max_score": 50},
		},
		"certifications": []map[string]interface{}{},
		"projects":       []map[string]interface{}{},
	}
}

func fakeUpstream(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/students", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, upstreamStudents)
	})
	mux.HandleFunc("/api/performance/student/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, upstreamBundle(1))
	})
	mux.HandleFunc("/api/performance/student/2", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, upstreamBundle(2))
	})
	mux.HandleFunc("/api/performance/student/3", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "database offline"})
	})
	mux.HandleFunc("/api/prediction/future-performance/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"predicted_overall_score": 88.2,
			"trends":                  map[string]interface{}{"exams": map[string]interface{}{"trend": 0.4}},
		})
	})
	mux.HandleFunc("/api/prediction/improvements/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"recommendations": []interface{}{}, "total_recommendations": 0})
	})
	mux.HandleFunc("/api/files/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("type") == "exams" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing column: score"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"students_added": 2, "students_skipped": 0, "errors": []string{}})
	})
	mux.HandleFunc("/api/files/export/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, "id,name\n1,Ada Lovelace\n")
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return newTestRouterWith(t, nil)
}

// newTestRouterWith builds the router against the fake upstream; tweak may
// adjust the config before wiring.
func newTestRouterWith(t *testing.T, tweak func(cfg *config.Config)) http.Handler {
	t.Helper()
	validator.Setup()

	upstream := fakeUpstream(t)
	log := zerolog.Nop()
	cfg := &config.Config{GinMode: "test", RateLimit: 1000, MaxUploadBytes: 1 << 20, DepartmentFetchConcurrency: 2}
	if tweak != nil {
		tweak(cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	api := client.New(upstream.URL+"/api", 2*time.Second, log)
	studentRepo := repository.NewStudentRepository(api, nil)
	perfRepo := repository.NewPerformanceRepository(api, nil)
	predRepo := repository.NewPredictionRepository(api)

	return SetupRouter(ctx, &Handlers{
		Dashboard:  handler.NewDashboardHandler(service.NewDashboardService(studentRepo)),
		Student:    handler.NewStudentHandler(service.NewStudentService(perfRepo)),
		Analytics:  handler.NewAnalyticsHandler(service.NewAnalyticsService(studentRepo, perfRepo, cfg.DepartmentFetchConcurrency)),
		Prediction: handler.NewPredictionHandler(service.NewPredictionService(studentRepo, predRepo)),
		File:       handler.NewFileHandler(service.NewFileService(api, studentRepo, cfg.MaxUploadBytes, log), cfg.MaxUploadBytes),
		Report:     handler.NewReportHandler(service.NewReportService(studentRepo, perfRepo, 2, log)),
		System:     handler.NewSystemHandler(nil, log),
	}, cfg, log)
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
	Metadata struct {
		RequestID string `json:"request_id"`
	} `json:"metadata"`
}

func do(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, envelope) {
	return do(t, h, httptest.NewRequest(http.MethodGet, path, nil))
}

func TestHealth(t *testing.T) {
	w, env := get(t, newTestRouter(t), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"status":"ok"`)
	assert.NotEmpty(t, env.Metadata.RequestID)
}

func TestDashboardRoute(t *testing.T) {
	r := newTestRouter(t)

	w, env := get(t, r, "/api/v1/dashboard?q=ada&department=Computer+Science")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var data service.DashboardData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 2, data.Cards.TotalStudents)
	assert.Equal(t, 1, data.Cards.MatchingStudents)
	assert.Equal(t, "CS001", data.Students[0].StudentID)

	w, env = get(t, r, "/api/v1/dashboard?year=abc")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Empty(t, data.Students)

	// Non-numeric years of any reasonable length still mean "no match".
	w, env = get(t, r, "/api/v1/dashboard?year=twenty")
	require.Equal(t, http.StatusOK, w.Code)
	require.Nil(t, env.Error)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Empty(t, data.Students)
}

func TestStudentRoute(t *testing.T) {
	r := newTestRouter(t)

	w, env := get(t, r, "/api/v1/students/1?tab=exams")
	require.Equal(t, http.StatusOK, w.Code)
	var view service.StudentView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, 50.0, view.Overview.AttendancePercentage)
	require.NotNil(t, view.Exams)
	assert.Equal(t, "excellent", view.Exams.Records[0].Band)

	cases := []struct {
		path   string
		status int
		code   string
	}{
		{"/api/v1/students/abc", http.StatusBadRequest, "INVALID_ID"},
		{"/api/v1/students/1?tab=grades", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"/api/v1/students/99", http.StatusNotFound, "NOT_FOUND"},
		{"/api/v1/students/3", http.StatusBadGateway, "UPSTREAM_UNAVAILABLE"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			w, env := get(t, r, tc.path)
			assert.Equal(t, tc.status, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}

	_, env = get(t, r, "/api/v1/students/3")
	assert.Equal(t, "Failed to fetch data. Please try again later.", env.Error.Message)
}

func TestAnalyticsRoute(t *testing.T) {
	w, env := get(t, newTestRouter(t), "/api/v1/analytics/departments")
	require.Equal(t, http.StatusOK, w.Code)

	var data service.DepartmentComparisonData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Departments, 2)
	assert.Equal(t, 90.0, data.Departments[0].AvgExamScore)
}

func TestPredictionRoutes(t *testing.T) {
	r := newTestRouter(t)

	w, env := get(t, r, "/api/v1/predictions/students")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "private, max-age=30", w.Header().Get("Cache-Control"))
	assert.Contains(t, string(env.Data), `"name":"Ada Lovelace"`)

	w, env = get(t, r, "/api/v1/predictions/1")
	require.Equal(t, http.StatusOK, w.Code)
	var view service.PredictionView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "excellent", view.OutlookBand)
	assert.Equal(t, "improving", view.TrendDirections["exams"])
}

func multipartUpload(t *testing.T, recordType, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("type", recordType))
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, _ = io.WriteString(fw, content)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadRoute(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, multipartUpload(t, "students", "roster.csv", "id,name\n"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"added_count":2,"skipped_count":0,"error_messages":[]}`, string(env.Data))

	w, env = do(t, r, multipartUpload(t, "exams", "exams.csv", "x"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "IMPORT_REJECTED", env.Error.Code)
	assert.Equal(t, "missing column: score", env.Error.Message)

	_, env = do(t, r, multipartUpload(t, "students", "roster.pdf", "x"))
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", env.Error.Code)

	_, env = do(t, r, multipartUpload(t, "students", "", ""))
	assert.Equal(t, "FILE_REQUIRED", env.Error.Code)

	_, env = do(t, r, multipartUpload(t, "grades", "a.csv", "x"))
	assert.Equal(t, "INVALID_RECORD_TYPE", env.Error.Code)
}

func TestUploadRouteRejectsOversizedBody(t *testing.T) {
	r := newTestRouterWith(t, func(cfg *config.Config) { cfg.MaxUploadBytes = 1 << 10 })

	// Past the body cap: the request is cut off while reading.
	w, env := do(t, r, multipartUpload(t, "students", "roster.csv", strings.Repeat("x", 256<<10)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FILE_TOO_LARGE", env.Error.Code)

	// Within the body cap but over the file limit.
	w, env = do(t, r, multipartUpload(t, "students", "roster.csv", strings.Repeat("x", 2<<10)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FILE_TOO_LARGE", env.Error.Code)

	w, _ = do(t, r, multipartUpload(t, "students", "roster.csv", "id,name\n"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExportRoutes(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/files/export/1?format=csv", nil)
	req.Header.Set("Accept-Encoding", "br")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="student_1_export.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "id,name\n1,Ada Lovelace\n", w.Body.String())

	_, env := get(t, r, "/api/v1/files/export/1?format=pdf")
	assert.Equal(t, "INVALID_EXPORT_FORMAT", env.Error.Code)

	_, env = get(t, r, "/api/v1/files/export-all?year=first")
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "year")
}

func TestRosterReportRoute(t *testing.T) {
	w, _ := get(t, newTestRouter(t), "/api/v1/reports/roster.xlsx")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="roster.xlsx"`, w.Header().Get("Content-Disposition"))
	// xlsx is a zip archive.
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))

	w, _ = get(t, newTestRouter(t), "/api/v1/reports/roster.xlsx?year=twenty")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	w, env := get(t, newTestRouter(t), "/api/v1/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
