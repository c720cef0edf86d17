package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// scoreReportSchema validates the JSON payload the model returns in
// full-score mode. Responses that do not conform are treated as malformed.
const scoreReportSchema = `{
	"type": "object",
	"required": ["match_score", "matched_skills", "missing_skills", "summary", "recommendation"],
	"properties": {
		"match_score": {"type": "number", "minimum": 0, "maximum": 100},
		"matched_skills": {"type": "array", "items": {"type": "string"}},
		"missing_skills": {"type": "array", "items": {"type": "string"}},
		"summary": {"type": "string", "minLength": 1},
		"recommendation": {"type": "string"}
	},
	"additionalProperties": true
}`

// ScoreReport is the structured full-score evaluation returned by the model.
type ScoreReport struct {
	MatchScore     float64  `json:"match_score"`
	MatchedSkills  []string `json:"matched_skills"`
	MissingSkills  []string `json:"missing_skills"`
	Summary        string   `json:"summary"`
	Recommendation string   `json:"recommendation"`
}

// ParseScoreReport validates raw model output against the score report schema
// and unmarshals it.
func ParseScoreReport(raw string) (*ScoreReport, error) {
	schemaLoader := gojsonschema.NewStringLoader(scoreReportSchema)
	documentLoader := gojsonschema.NewStringLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}
	if !result.Valid() {
		var issues []string
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return nil, fmt.Errorf("response does not match score report schema: %s", strings.Join(issues, "; "))
	}

	var report ScoreReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, fmt.Errorf("failed to decode score report: %w", err)
	}
	return &report, nil
}

// Render formats the structured evaluation as a readable report.
func (r *ScoreReport) Render() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Match score: %.0f/100\n", r.MatchScore))

	if len(r.MatchedSkills) > 0 {
		sb.WriteString("\nMatched skills:\n")
		for _, skill := range r.MatchedSkills {
			sb.WriteString("  - " + skill + "\n")
		}
	}

	if len(r.MissingSkills) > 0 {
		sb.WriteString("\nMissing skills:\n")
		for _, skill := range r.MissingSkills {
			sb.WriteString("  - " + skill + "\n")
		}
	}

	sb.WriteString("\n" + strings.TrimSpace(r.Summary) + "\n")

	if r.Recommendation != "" {
		sb.WriteString("\nRecommendation: " + strings.TrimSpace(r.Recommendation) + "\n")
	}

	return sb.String()
}
