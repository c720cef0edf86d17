// Package session holds per-conversation analysis state and its store.
package session

import (
	"sync"
	"time"

	"github.com/jonathan/resume-grader/internal/analysis"
)

// State is the session's position in the input-capture machine.
type State string

const (
	// StateAwaitingResume means no resume has been captured yet.
	StateAwaitingResume State = "awaiting_resume"
	// StateAwaitingJob means a resume is captured and a job description is expected.
	StateAwaitingJob State = "awaiting_job"
	// StateReady means both inputs are captured and analysis actions are available.
	StateReady State = "ready"
)

// Report is one cached analysis result, keyed by mode in the session.
type Report struct {
	Mode        analysis.Mode
	Text        string
	GeneratedAt time.Time
}

// Session is the per-conversation record. All field access goes through
// methods holding the internal data lock; event serialization for one
// identity is a separate concern handled by LockEvents/UnlockEvents.
type Session struct {
	identity string

	// eventMu serializes whole events (including extractor and engine calls)
	// for this identity.
	eventMu sync.Mutex

	// mu guards the fields below for concurrent readers (e.g. a status
	// endpoint) while an event is in flight.
	mu         sync.RWMutex
	resumeText string
	resumeName string
	jobText    string
	jobSource  string
	state      State
	generation uint64
	reports    map[analysis.Mode]Report
}

// New creates an empty session in StateAwaitingResume.
func New(identity string) *Session {
	return &Session{
		identity: identity,
		state:    StateAwaitingResume,
		reports:  make(map[analysis.Mode]Report),
	}
}

// Identity returns the conversation identity owning this session.
func (s *Session) Identity() string {
	return s.identity
}

// LockEvents blocks until this session's previous event has finished.
func (s *Session) LockEvents() {
	s.eventMu.Lock()
}

// UnlockEvents releases the per-identity event serialization lock.
func (s *Session) UnlockEvents() {
	s.eventMu.Unlock()
}

// State returns the current machine state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Generation returns the current generation counter.
func (s *Session) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// HasResume reports whether resume text is captured.
func (s *Session) HasResume() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resumeText != ""
}

// HasJob reports whether job text is captured.
func (s *Session) HasJob() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobText != ""
}

// ResumeName returns the file name of the captured resume, if any.
func (s *Session) ResumeName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resumeName
}

// JobSource returns where the captured job text came from (pasted or URL).
func (s *Session) JobSource() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobSource
}

// SetResume captures (or replaces) the resume. Any captured job text and all
// cached reports are invalidated, the generation advances, and the session
// moves to StateAwaitingJob.
func (s *Session) SetResume(name, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumeName = name
	s.resumeText = text
	s.jobText = ""
	s.jobSource = ""
	s.reports = make(map[analysis.Mode]Report)
	s.generation++
	s.state = StateAwaitingJob
}

// SetJob captures job text and moves the session to StateReady.
// Returns false (and changes nothing) when no resume is captured, preserving
// the invariant that job text never exists without resume text.
func (s *Session) SetJob(text, source string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resumeText == "" {
		return false
	}
	s.jobText = text
	s.jobSource = source
	s.reports = make(map[analysis.Mode]Report)
	s.generation++
	s.state = StateReady
	return true
}

// ClearJob drops the captured job text and every cached report, keeping the
// resume. The session moves back to StateAwaitingJob. No-op in
// StateAwaitingResume.
func (s *Session) ClearJob() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resumeText == "" {
		return false
	}
	s.jobText = ""
	s.jobSource = ""
	s.reports = make(map[analysis.Mode]Report)
	s.generation++
	s.state = StateAwaitingJob
	return true
}

// Snapshot returns the generation and input texts for an analysis dispatch.
// The engine call runs outside the data lock; StoreReport compares the
// generation at commit time.
func (s *Session) Snapshot() (generation uint64, resumeText, jobText string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation, s.resumeText, s.jobText
}

// StoreReport caches a report if the session generation still matches the
// one captured at dispatch. Returns false when the result is stale and was
// discarded.
func (s *Session) StoreReport(generation uint64, report Report) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return false
	}
	s.reports[report.Mode] = report
	return true
}

// CachedReport returns the cached report for a mode, if present.
func (s *Session) CachedReport(mode analysis.Mode) (Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[mode]
	return report, ok
}

// CachedReports returns a copy of all cached reports in mode order.
func (s *Session) CachedReports() []Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var reports []Report
	for _, mode := range analysis.Modes() {
		if report, ok := s.reports[mode]; ok {
			reports = append(reports, report)
		}
	}
	return reports
}
