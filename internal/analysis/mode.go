// Package analysis defines the resume/job analysis contract and its Gemini-backed engine.
package analysis

// Mode identifies an analysis variant. The set is closed.
type Mode string

const (
	// ModeFullScore produces the overall compatibility report with a 0-100 score.
	ModeFullScore Mode = "full_score"
	// ModeMissingSkills reports requirements the resume does not cover.
	ModeMissingSkills Mode = "missing_skills"
	// ModeTailoredSummary writes a professional summary tailored to the job.
	ModeTailoredSummary Mode = "tailored_summary"
)

// Modes lists all analysis variants in presentation order.
func Modes() []Mode {
	return []Mode{ModeFullScore, ModeMissingSkills, ModeTailoredSummary}
}

// Valid reports whether m is a known analysis mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeFullScore, ModeMissingSkills, ModeTailoredSummary:
		return true
	}
	return false
}

// Title returns the human-readable report heading for a mode.
func (m Mode) Title() string {
	switch m {
	case ModeFullScore:
		return "Compatibility Report"
	case ModeMissingSkills:
		return "Missing Skills"
	case ModeTailoredSummary:
		return "Tailored Summary"
	}
	return string(m)
}
