package analysis

import (
	"context"
	"log"

	"github.com/jonathan/resume-grader/internal/llm"
	"github.com/jonathan/resume-grader/internal/prompts"
)

// promptFile holds the per-mode prompt templates.
const promptFile = "analysis.json"

// GeminiEngine implements Engine on top of the shared LLM client.
type GeminiEngine struct {
	client  llm.Client
	verbose bool
}

// NewGeminiEngine creates an analysis engine backed by an LLM client.
func NewGeminiEngine(client llm.Client, verbose bool) *GeminiEngine {
	return &GeminiEngine{client: client, verbose: verbose}
}

// Analyze runs one analysis variant for a resume/job pair and returns the
// formatted report text.
func (e *GeminiEngine) Analyze(ctx context.Context, mode Mode, resumeText, jobText string) (string, error) {
	if !mode.Valid() {
		return "", &Error{Mode: mode, Message: "unknown analysis mode"}
	}

	template, err := prompts.Get(promptFile, string(mode))
	if err != nil {
		return "", &Error{Mode: mode, Message: "prompt template not found", Cause: err}
	}

	resumeText, resumeCut := truncateField(resumeText)
	jobText, jobCut := truncateField(jobText)
	if e.verbose && (resumeCut || jobCut) {
		log.Printf("[VERBOSE] Analysis input truncated to %d chars per field (resume: %v, job: %v)",
			MaxFieldChars, resumeCut, jobCut)
	}

	prompt := prompts.Format(template, map[string]string{
		"Resume": resumeText,
		"Job":    jobText,
	})

	if mode == ModeFullScore {
		return e.fullScore(ctx, prompt)
	}

	text, err := e.client.GenerateContent(ctx, prompt, tierFor(mode))
	if err != nil {
		return "", &Error{Mode: mode, Message: "model call failed", Cause: err}
	}
	return text, nil
}

// fullScore requests a structured JSON evaluation and renders it.
func (e *GeminiEngine) fullScore(ctx context.Context, prompt string) (string, error) {
	raw, err := e.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", &Error{Mode: ModeFullScore, Message: "model call failed", Cause: err}
	}

	report, err := ParseScoreReport(raw)
	if err != nil {
		return "", &Error{Mode: ModeFullScore, Message: "malformed model response", Cause: err}
	}

	return report.Render(), nil
}

// tierFor maps an analysis mode to a model tier. The tailored summary is the
// only mode that needs the stronger writing model.
func tierFor(mode Mode) llm.ModelTier {
	if mode == ModeTailoredSummary {
		return llm.TierAdvanced
	}
	return llm.TierStandard
}
