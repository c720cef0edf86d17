package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/resume-grader/internal/analysis"
	"github.com/jonathan/resume-grader/internal/controller"
	"github.com/jonathan/resume-grader/internal/session"
)

// maxResumeBytes caps a resume upload at 10 MB.
const maxResumeBytes = 10 << 20

// JobRequest represents the request body for /sessions/{id}/job
type JobRequest struct {
	Input string `json:"input" validate:"required,min=1"`
}

// ActionRequest represents the request body for /sessions/{id}/actions
type ActionRequest struct {
	Action string `json:"action" validate:"required,oneof=rerun missing_skills tailored_summary new_job"`
}

// SessionResponse represents the response for session creation and status
type SessionResponse struct {
	SessionID    string           `json:"session_id"`
	State        string           `json:"state"`
	ResumeName   string           `json:"resume_name,omitempty"`
	JobSource    string           `json:"job_source,omitempty"`
	ValidActions []string         `json:"valid_actions,omitempty"`
	Prompt       string           `json:"prompt,omitempty"`
	Reports      []ReportResponse `json:"reports,omitempty"`
}

// ReportResponse represents one analysis report
type ReportResponse struct {
	Mode        string `json:"mode"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	GeneratedAt string `json:"generated_at"`
}

// ResultResponse represents the controller's answer to a session event
type ResultResponse struct {
	SessionID    string          `json:"session_id"`
	State        string          `json:"state"`
	ValidActions []string        `json:"valid_actions,omitempty"`
	Prompt       string          `json:"prompt,omitempty"`
	Report       *ReportResponse `json:"report,omitempty"`
	Info         string          `json:"info,omitempty"`
	Error        *ErrorResponse  `json:"error,omitempty"`
}

// ErrorResponse represents a recovered failure
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// handleCreateSession allocates a fresh conversation identity
func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	id := uuid.New().String()
	sess := s.controller.Store().GetOrCreate(id)

	s.jsonResponse(w, http.StatusCreated, SessionResponse{
		SessionID: sess.Identity(),
		State:     string(sess.State()),
		Prompt:    (&controller.Result{State: sess.State()}).Prompt(),
	})
}

// handleGetSession returns the current session status and cached reports
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.controller.Store().Get(r.PathValue("id"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	resp := SessionResponse{
		SessionID:  sess.Identity(),
		State:      string(sess.State()),
		ResumeName: sess.ResumeName(),
		JobSource:  sess.JobSource(),
		Prompt:     (&controller.Result{State: sess.State()}).Prompt(),
	}
	if sess.State() == session.StateReady {
		resp.ValidActions = actionStrings(sess.State())
	}
	for _, report := range sess.CachedReports() {
		resp.Reports = append(resp.Reports, reportResponse(report))
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleUploadResume captures a resume from a multipart upload
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Form file 'resume' is required")
		return
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(io.LimitReader(file, maxResumeBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read upload: "+err.Error())
		return
	}

	result := s.controller.HandleEvent(r.Context(), controller.ResumeUploaded{
		ID:       id,
		FileName: header.Filename,
		Data:     data,
	})
	s.resultResponse(w, result)
}

// handleSubmitJob captures job description input (pasted text or URL)
func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	result := s.controller.HandleEvent(r.Context(), controller.JobSubmitted{
		ID:    id,
		Input: req.Input,
	})
	s.resultResponse(w, result)
}

// handleAction triggers an explicit analysis action
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	action, err := controller.ParseAction(req.Action)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result := s.controller.HandleEvent(r.Context(), controller.ActionTriggered{
		ID:     id,
		Action: action,
	})
	s.resultResponse(w, result)
}

// handleGetReport re-renders a cached report without a new analysis call
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.controller.Store().Get(r.PathValue("id"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	mode := analysis.Mode(r.PathValue("mode"))
	if !mode.Valid() {
		s.errorResponse(w, http.StatusBadRequest, "Unknown report mode")
		return
	}

	report, ok := sess.CachedReport(mode)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "No cached report for this mode")
		return
	}

	s.jsonResponse(w, http.StatusOK, reportResponse(report))
}

// resultResponse renders a controller result, picking the status from the
// failure kind when the event did not succeed.
func (s *Server) resultResponse(w http.ResponseWriter, result *controller.Result) {
	resp := ResultResponse{
		SessionID:    result.Identity,
		State:        string(result.State),
		ValidActions: actionStrings(result.State),
		Prompt:       result.Prompt(),
		Info:         result.Info,
	}
	if result.Report != nil {
		rr := reportResponse(*result.Report)
		resp.Report = &rr
	}

	if result.Failed() {
		resp.Error = &ErrorResponse{
			Kind:    controller.ErrorKind(result.Err),
			Message: controller.UserMessage(result.Err),
		}
		s.jsonResponse(w, HTTPStatus(result.Err), resp)
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// reportResponse converts a cached report to its wire form.
func reportResponse(report session.Report) ReportResponse {
	return ReportResponse{
		Mode:        string(report.Mode),
		Title:       report.Mode.Title(),
		Text:        report.Text,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
	}
}

// actionStrings renders the advertised actions for a state.
func actionStrings(state session.State) []string {
	if state != session.StateReady {
		return nil
	}
	actions := []controller.Action{
		controller.ActionRerun,
		controller.ActionMissingSkills,
		controller.ActionTailoredSummary,
		controller.ActionNewJob,
	}
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = string(a)
	}
	return out
}

// validationMessage extracts the first validation failure as a readable message.
func validationMessage(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return "Validation failed on field '" + fe.Field() + "' (" + fe.Tag() + ")"
	}
	return "Validation failed: " + err.Error()
}
