package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_AnalysisPrompts(t *testing.T) {
	for _, key := range []string{"full_score", "missing_skills", "tailored_summary"} {
		prompt, err := Get("analysis.json", key)
		require.NoError(t, err, "key %s", key)
		assert.Contains(t, prompt, "{{.Resume}}")
		assert.Contains(t, prompt, "{{.Job}}")
	}
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("analysis.json", "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("nope.json", "full_score")
	require.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("analysis.json", "nonexistent")
	})
}

func TestFormat(t *testing.T) {
	template := "RESUME:\n{{.Resume}}\n\nJOB:\n{{.Job}}"
	result := Format(template, map[string]string{
		"Resume": "Experienced engineer",
		"Job":    "Senior Go role",
	})
	assert.Equal(t, "RESUME:\nExperienced engineer\n\nJOB:\nSenior Go role", result)
	assert.False(t, strings.Contains(result, "{{"))
}

func TestFormat_UnknownPlaceholderLeftIntact(t *testing.T) {
	result := Format("{{.Missing}}", map[string]string{"Other": "x"})
	assert.Equal(t, "{{.Missing}}", result)
}
