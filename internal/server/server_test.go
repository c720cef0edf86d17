package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-grader/internal/analysis"
	"github.com/jonathan/resume-grader/internal/controller"
	"github.com/jonathan/resume-grader/internal/extract"
	"github.com/jonathan/resume-grader/internal/session"
)

type fakeExtractor struct {
	resumeErr error
	jobErr    error
}

func (f *fakeExtractor) ResumeText(name string, data []byte) (string, error) {
	if f.resumeErr != nil {
		return "", f.resumeErr
	}
	return "resume text from " + name, nil
}

func (f *fakeExtractor) JobText(_ context.Context, raw string) (string, string, error) {
	if f.jobErr != nil {
		return "", "", f.jobErr
	}
	return "job text: " + raw, extract.SourcePasted, nil
}

type fakeEngine struct {
	err   error
	calls int
}

func (f *fakeEngine) Analyze(_ context.Context, mode analysis.Mode, _, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("%s report #%d", mode, f.calls), nil
}

func newTestServer(t *testing.T, docs controller.Extractor, engine analysis.Engine) *httptest.Server {
	t.Helper()
	store := session.NewStore(0)
	ctrl := controller.New(store, docs, engine, controller.Options{})
	ts := httptest.NewServer(New(ctrl, Config{Port: 0}).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func uploadResume(t *testing.T, url, filename, content string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("resume", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(url, mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	return resp
}

func decodeResult(t *testing.T, resp *http.Response) ResultResponse {
	t.Helper()
	defer resp.Body.Close() //nolint:errcheck
	var result ResultResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, &fakeExtractor{}, &fakeEngine{})

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateSession(t *testing.T) {
	ts := newTestServer(t, &fakeExtractor{}, &fakeEngine{})

	resp := postJSON(t, ts.URL+"/sessions", nil)
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.SessionID)
	assert.Equal(t, string(session.StateAwaitingResume), created.State)
	assert.Contains(t, created.Prompt, "resume")
}

func TestSessionFlow(t *testing.T) {
	ts := newTestServer(t, &fakeExtractor{}, &fakeEngine{})
	base := ts.URL + "/sessions/chat-1"

	// Upload resume
	result := decodeResult(t, uploadResume(t, base+"/resume", "cv.pdf", "pdf bytes"))
	assert.Equal(t, string(session.StateAwaitingJob), result.State)
	assert.Contains(t, result.Info, "cv.pdf")
	assert.Nil(t, result.Error)

	// Submit job: auto full score
	result = decodeResult(t, postJSON(t, base+"/job", JobRequest{Input: "Backend engineer posting"}))
	assert.Equal(t, string(session.StateReady), result.State)
	require.NotNil(t, result.Report)
	assert.Equal(t, string(analysis.ModeFullScore), result.Report.Mode)
	assert.ElementsMatch(t, []string{"rerun", "missing_skills", "tailored_summary", "new_job"}, result.ValidActions)

	// Explicit action
	result = decodeResult(t, postJSON(t, base+"/actions", ActionRequest{Action: "missing_skills"}))
	require.NotNil(t, result.Report)
	assert.Equal(t, string(analysis.ModeMissingSkills), result.Report.Mode)

	// Status shows both cached reports
	resp, err := http.Get(base)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	var status SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, string(session.StateReady), status.State)
	assert.Equal(t, "cv.pdf", status.ResumeName)
	assert.Len(t, status.Reports, 2)

	// Cached report re-render
	resp, err = http.Get(base + "/reports/full_score")
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report ReportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "Compatibility Report", report.Title)

	// New job keeps the resume
	result = decodeResult(t, postJSON(t, base+"/actions", ActionRequest{Action: "new_job"}))
	assert.Equal(t, string(session.StateAwaitingJob), result.State)
}

func TestJobBeforeResume(t *testing.T) {
	ts := newTestServer(t, &fakeExtractor{}, &fakeEngine{})

	resp := postJSON(t, ts.URL+"/sessions/chat-2/job", JobRequest{Input: "posting"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	result := decodeResult(t, resp)
	require.NotNil(t, result.Error)
	assert.Equal(t, "missing_input", result.Error.Kind)
	assert.Equal(t, string(session.StateAwaitingResume), result.State)
}

func TestActionOutsideReady(t *testing.T) {
	ts := newTestServer(t, &fakeExtractor{}, &fakeEngine{})

	resp := postJSON(t, ts.URL+"/sessions/chat-3/actions", ActionRequest{Action: "rerun"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	result := decodeResult(t, resp)
	require.NotNil(t, result.Error)
	assert.Equal(t, "invalid_action", result.Error.Kind)
}

func TestResumeExtractionError(t *testing.T) {
	docs := &fakeExtractor{resumeErr: &extract.ExtractionError{Name: "cv.pdf", Message: "no text"}}
	ts := newTestServer(t, docs, &fakeEngine{})

	resp := uploadResume(t, ts.URL+"/sessions/chat-4/resume", "cv.pdf", "junk")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	result := decodeResult(t, resp)
	require.NotNil(t, result.Error)
	assert.Equal(t, "extraction_error", result.Error.Kind)
	assert.Equal(t, string(session.StateAwaitingResume), result.State)
}

func TestAnalysisError(t *testing.T) {
	engine := &fakeEngine{err: &analysis.Error{Mode: analysis.ModeFullScore, Message: "model unavailable"}}
	ts := newTestServer(t, &fakeExtractor{}, engine)
	base := ts.URL + "/sessions/chat-5"

	decodeResult(t, uploadResume(t, base+"/resume", "cv.txt", "text"))
	resp := postJSON(t, base+"/job", JobRequest{Input: "posting"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	result := decodeResult(t, resp)
	require.NotNil(t, result.Error)
	assert.Equal(t, "analysis_error", result.Error.Kind)
	// Job stays captured; the failure does not roll back state
	assert.Equal(t, string(session.StateReady), result.State)
}

func TestValidation(t *testing.T) {
	ts := newTestServer(t, &fakeExtractor{}, &fakeEngine{})
	base := ts.URL + "/sessions/chat-6"

	resp := postJSON(t, base+"/job", JobRequest{})
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, base+"/actions", ActionRequest{Action: "self_destruct"})
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err := http.Post(base+"/actions", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUnknownSession(t *testing.T) {
	ts := newTestServer(t, &fakeExtractor{}, &fakeEngine{})

	resp, err := http.Get(ts.URL + "/sessions/never-seen")
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/sessions/never-seen/reports/full_score")
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnknownReportMode(t *testing.T) {
	ts := newTestServer(t, &fakeExtractor{}, &fakeEngine{})
	base := ts.URL + "/sessions/chat-7"

	decodeResult(t, uploadResume(t, base+"/resume", "cv.txt", "text"))

	resp, err := http.Get(base + "/reports/horoscope")
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMissingResumeFormFile(t *testing.T) {
	ts := newTestServer(t, &fakeExtractor{}, &fakeEngine{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "value"))
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL+"/sessions/chat-8/resume", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{&controller.InvalidActionError{Action: controller.ActionRerun, State: session.StateAwaitingJob}, http.StatusConflict},
		{&controller.MissingInputError{Field: "resume"}, http.StatusConflict},
		{controller.ErrStaleResult, http.StatusConflict},
		{&extract.ExtractionError{Name: "cv.pdf"}, http.StatusUnprocessableEntity},
		{&extract.FetchError{Source: "https://example.com"}, http.StatusBadGateway},
		{&analysis.Error{Mode: analysis.ModeFullScore}, http.StatusBadGateway},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, HTTPStatus(tt.err), "err: %v", tt.err)
	}
}
