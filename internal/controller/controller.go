package controller

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/resume-grader/internal/analysis"
	"github.com/jonathan/resume-grader/internal/session"
)

// DefaultAnalysisTimeout bounds a single analysis engine call.
const DefaultAnalysisTimeout = 90 * time.Second

// Extractor is the document extraction capability the controller consumes.
// *extract.Documents satisfies it.
type Extractor interface {
	// ResumeText converts an uploaded resume into plain text.
	ResumeText(name string, data []byte) (string, error)
	// JobText captures job description text from raw input (pasted or URL),
	// returning the text and its source.
	JobText(ctx context.Context, raw string) (string, string, error)
}

// Options configures controller behavior.
type Options struct {
	// AnalysisTimeout bounds each engine call; zero uses DefaultAnalysisTimeout.
	AnalysisTimeout time.Duration
	Verbose         bool
}

// Controller drives the per-conversation state machine. It owns no transport
// concerns: events come in, results go out.
type Controller struct {
	store  *session.Store
	docs   Extractor
	engine analysis.Engine
	opts   Options
}

// New creates a controller over the given store and injected capabilities.
func New(store *session.Store, docs Extractor, engine analysis.Engine, opts Options) *Controller {
	if opts.AnalysisTimeout <= 0 {
		opts.AnalysisTimeout = DefaultAnalysisTimeout
	}
	return &Controller{
		store:  store,
		docs:   docs,
		engine: engine,
		opts:   opts,
	}
}

// Store exposes the session store for read-only delivery concerns
// (status endpoints, cached report re-render).
func (c *Controller) Store() *session.Store {
	return c.store
}

// HandleEvent processes one inbound event for its conversation identity.
// Events for the same identity are strictly serialized, including the time
// spent in extractor and engine calls; distinct identities proceed in
// parallel. Every failure is recovered into the Result and leaves the
// session's prior valid state untouched.
func (c *Controller) HandleEvent(ctx context.Context, ev Event) *Result {
	sess := c.store.GetOrCreate(ev.Identity())
	sess.LockEvents()
	defer sess.UnlockEvents()

	switch e := ev.(type) {
	case ResumeUploaded:
		return c.handleResume(sess, e)
	case JobSubmitted:
		return c.handleJob(ctx, sess, e)
	case ActionTriggered:
		return c.handleAction(ctx, sess, e)
	}

	// Event is a closed union; a new variant without a handler is a bug.
	return c.failure(sess, fmt.Errorf("unhandled event type %T", ev))
}

// handleResume captures (or replaces) the resume. Capturing a resume always
// invalidates any captured job and cached reports.
func (c *Controller) handleResume(sess *session.Session, e ResumeUploaded) *Result {
	text, err := c.docs.ResumeText(e.FileName, e.Data)
	if err != nil {
		return c.failure(sess, err)
	}

	sess.SetResume(e.FileName, text)
	if c.opts.Verbose {
		log.Printf("[VERBOSE] session %s: resume %q captured (%d chars)", sess.Identity(), e.FileName, len(text))
	}

	return &Result{
		Identity:     sess.Identity(),
		State:        sess.State(),
		ValidActions: validActions(sess.State()),
		Info:         fmt.Sprintf("Resume %q received.", e.FileName),
	}
}

// handleJob captures job text and auto-triggers the full-score analysis.
// A job submitted while one is already captured replaces it, which is
// equivalent to NewJob followed by the capture.
func (c *Controller) handleJob(ctx context.Context, sess *session.Session, e JobSubmitted) *Result {
	if !sess.HasResume() {
		return c.failure(sess, &MissingInputError{Field: "resume"})
	}

	text, source, err := c.docs.JobText(ctx, e.Input)
	if err != nil {
		return c.failure(sess, err)
	}

	sess.SetJob(text, source)
	if c.opts.Verbose {
		log.Printf("[VERBOSE] session %s: job captured from %s (%d chars)", sess.Identity(), source, len(text))
	}

	// First entry into Ready for this job: run the full score once,
	// before any explicit action.
	return c.runAnalysis(ctx, sess, analysis.ModeFullScore)
}

// handleAction dispatches an explicit action against the current state.
func (c *Controller) handleAction(ctx context.Context, sess *session.Session, e ActionTriggered) *Result {
	state := sess.State()

	if e.Action == ActionNewJob {
		if !sess.ClearJob() {
			return c.failure(sess, &InvalidActionError{Action: e.Action, State: state})
		}
		return &Result{
			Identity:     sess.Identity(),
			State:        sess.State(),
			ValidActions: validActions(sess.State()),
			Info:         "Job description cleared. Your resume is kept.",
		}
	}

	if state != session.StateReady {
		return c.failure(sess, &InvalidActionError{Action: e.Action, State: state})
	}

	mode, err := modeFor(e.Action)
	if err != nil {
		return c.failure(sess, err)
	}
	return c.runAnalysis(ctx, sess, mode)
}

// runAnalysis calls the engine for one mode and caches the result. The
// generation captured at dispatch is compared at commit time so a result
// that arrives after a reset is discarded rather than applied.
func (c *Controller) runAnalysis(ctx context.Context, sess *session.Session, mode analysis.Mode) *Result {
	gen, resumeText, jobText := sess.Snapshot()
	if resumeText == "" {
		return c.failure(sess, &MissingInputError{Field: "resume"})
	}
	if jobText == "" {
		return c.failure(sess, &MissingInputError{Field: "job description"})
	}

	callCtx, cancel := context.WithTimeout(ctx, c.opts.AnalysisTimeout)
	defer cancel()

	text, err := c.engine.Analyze(callCtx, mode, resumeText, jobText)
	if err != nil {
		return c.failure(sess, err)
	}

	report := session.Report{
		Mode:        mode,
		Text:        text,
		GeneratedAt: time.Now(),
	}
	if !sess.StoreReport(gen, report) {
		if c.opts.Verbose {
			log.Printf("[VERBOSE] session %s: %s result discarded (generation %d superseded)", sess.Identity(), mode, gen)
		}
		return c.failure(sess, ErrStaleResult)
	}

	return &Result{
		Identity:     sess.Identity(),
		State:        sess.State(),
		ValidActions: validActions(sess.State()),
		Report:       &report,
	}
}

// failure wraps a typed error into a Result reflecting the session's
// unchanged state.
func (c *Controller) failure(sess *session.Session, err error) *Result {
	state := sess.State()
	return &Result{
		Identity:     sess.Identity(),
		State:        state,
		ValidActions: validActions(state),
		Err:          err,
	}
}

// modeFor maps an analysis action to its engine mode.
func modeFor(action Action) (analysis.Mode, error) {
	switch action {
	case ActionRerun:
		return analysis.ModeFullScore, nil
	case ActionMissingSkills:
		return analysis.ModeMissingSkills, nil
	case ActionTailoredSummary:
		return analysis.ModeTailoredSummary, nil
	}
	return "", fmt.Errorf("action %q has no analysis mode", action)
}
