package controller

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-grader/internal/analysis"
	"github.com/jonathan/resume-grader/internal/extract"
	"github.com/jonathan/resume-grader/internal/session"
)

// InvalidActionError reports an action that the current session state does
// not support. The session is left unchanged.
type InvalidActionError struct {
	Action Action
	State  session.State
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("action %q is not available in state %q", e.Action, e.State)
}

// MissingInputError reports an analysis attempt with an absent input field.
// The state machine makes this unreachable for action events; it guards the
// direct input paths.
type MissingInputError struct {
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("cannot analyze without a %s", e.Field)
}

// ErrStaleResult marks an analysis result that completed after the session
// was reset and was therefore discarded.
var ErrStaleResult = errors.New("analysis result discarded: session changed while the analysis was running")

// ErrorKind classifies a failure for the delivery layer.
func ErrorKind(err error) string {
	var (
		extractionErr *extract.ExtractionError
		fetchErr      *extract.FetchError
		analysisErr   *analysis.Error
		invalidErr    *InvalidActionError
		missingErr    *MissingInputError
	)
	switch {
	case errors.As(err, &extractionErr):
		return "extraction_error"
	case errors.As(err, &fetchErr):
		return "fetch_error"
	case errors.As(err, &analysisErr):
		return "analysis_error"
	case errors.As(err, &invalidErr):
		return "invalid_action"
	case errors.As(err, &missingErr):
		return "missing_input"
	case errors.Is(err, ErrStaleResult):
		return "stale_result"
	}
	return "internal_error"
}

// UserMessage renders a failure as a sentence suitable for the end user.
func UserMessage(err error) string {
	var (
		extractionErr *extract.ExtractionError
		fetchErr      *extract.FetchError
		analysisErr   *analysis.Error
		invalidErr    *InvalidActionError
		missingErr    *MissingInputError
	)
	switch {
	case errors.As(err, &extractionErr):
		return "I couldn't read that resume. Please upload a PDF, DOCX, or plain-text file with selectable text."
	case errors.As(err, &fetchErr):
		return "I couldn't load a job description from that input. Check the URL or paste the posting text directly."
	case errors.As(err, &analysisErr):
		return "The analysis service failed on that request. Your resume and job description are still saved - try again."
	case errors.As(err, &invalidErr):
		return "That action isn't available right now."
	case errors.As(err, &missingErr):
		return fmt.Sprintf("I still need your %s before I can analyze anything.", missingErr.Field)
	case errors.Is(err, ErrStaleResult):
		return "That analysis was superseded by a newer change and has been discarded."
	}
	return "Something went wrong. Please try again."
}
