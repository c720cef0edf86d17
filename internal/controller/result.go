package controller

import "github.com/jonathan/resume-grader/internal/session"

// Result is the controller's answer to one event: either a report (or an
// informational message) plus the actions valid next, or a typed failure.
// The delivery adapter renders it; the core never formats transport payloads.
type Result struct {
	Identity     string
	State        session.State
	ValidActions []Action

	// Report is set when the event produced (or re-rendered) an analysis report.
	Report *session.Report
	// Info is set for successes without a report, e.g. a resume being accepted.
	Info string
	// Err is set on failure; the session keeps its prior valid state.
	Err error
}

// Failed reports whether the event ended in a failure.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Prompt tells the user what the session expects next.
func (r *Result) Prompt() string {
	return statePrompt(r.State)
}

// validActions returns the actions to advertise for a state.
// NewJob is additionally tolerated in StateAwaitingJob (it is an idempotent
// clear there) but only advertised once a job is captured.
func validActions(state session.State) []Action {
	if state == session.StateReady {
		return []Action{ActionRerun, ActionMissingSkills, ActionTailoredSummary, ActionNewJob}
	}
	return nil
}

// statePrompt returns the user guidance for a state.
func statePrompt(state session.State) string {
	switch state {
	case session.StateAwaitingResume:
		return "Upload your resume (PDF, DOCX, or plain text) to get started."
	case session.StateAwaitingJob:
		return "Send a job description - paste the text or share a posting URL."
	case session.StateReady:
		return "Pick an action: rerun the score, list missing skills, write a tailored summary, or start a new job."
	}
	return ""
}
