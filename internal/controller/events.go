// Package controller implements the per-conversation session state machine.
// It consumes inbound events, drives the document extractor and analysis
// engine, and produces reports with the set of actions valid next.
package controller

import "fmt"

// Action identifies a user-triggered analysis action.
type Action string

const (
	// ActionRerun recomputes the full-score report.
	ActionRerun Action = "rerun"
	// ActionMissingSkills generates the missing-skills breakdown.
	ActionMissingSkills Action = "missing_skills"
	// ActionTailoredSummary generates the tailored professional summary.
	ActionTailoredSummary Action = "tailored_summary"
	// ActionNewJob clears the captured job and cached reports, keeping the resume.
	ActionNewJob Action = "new_job"
)

// ParseAction converts a wire identifier into an Action.
func ParseAction(raw string) (Action, error) {
	action := Action(raw)
	switch action {
	case ActionRerun, ActionMissingSkills, ActionTailoredSummary, ActionNewJob:
		return action, nil
	}
	return "", fmt.Errorf("unknown action %q", raw)
}

// Event is the closed set of inbound session events. Exactly the three
// concrete types below implement it.
type Event interface {
	Identity() string
	isEvent()
}

// ResumeUploaded carries a resume file received from the user.
type ResumeUploaded struct {
	ID       string
	FileName string
	Data     []byte
}

// Identity returns the conversation identity the event belongs to.
func (e ResumeUploaded) Identity() string { return e.ID }
func (ResumeUploaded) isEvent()           {}

// JobSubmitted carries job description input: pasted text or a posting URL.
type JobSubmitted struct {
	ID    string
	Input string
}

// Identity returns the conversation identity the event belongs to.
func (e JobSubmitted) Identity() string { return e.ID }
func (JobSubmitted) isEvent()           {}

// ActionTriggered carries an explicit analysis action.
type ActionTriggered struct {
	ID     string
	Action Action
}

// Identity returns the conversation identity the event belongs to.
func (e ActionTriggered) Identity() string { return e.ID }
func (ActionTriggered) isEvent()           {}
