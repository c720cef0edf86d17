package analysis

import (
	"context"
	"strings"
)

// MaxFieldChars caps the resume and job text lengths passed to the model.
// Longer input is truncated rather than rejected; the model sees a marker so
// it knows the document was cut.
const MaxFieldChars = 60000

// truncationMarker is appended to any field that was cut at MaxFieldChars.
const truncationMarker = "\n[... truncated ...]"

// Engine produces a formatted report for a resume/job pair in a given mode.
// Output is not required to be deterministic across calls with the same
// inputs. Implementations must return *Error on failure.
type Engine interface {
	Analyze(ctx context.Context, mode Mode, resumeText, jobText string) (string, error)
}

// truncateField bounds a prompt field at MaxFieldChars, cutting at a line
// boundary where possible.
func truncateField(text string) (string, bool) {
	if len(text) <= MaxFieldChars {
		return text, false
	}

	cut := text[:MaxFieldChars]
	if idx := strings.LastIndexByte(cut, '\n'); idx > MaxFieldChars/2 {
		cut = cut[:idx]
	}
	return cut + truncationMarker, true
}
