// Package extract converts uploaded resumes and job inputs into plain text.
package extract

import "fmt"

// ExtractionError represents an unreadable or empty resume upload.
type ExtractionError struct {
	Name    string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume extraction error (%s): %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("resume extraction error (%s): %s", e.Name, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// FetchError represents a failure to capture job description text,
// either from an unreachable URL or from empty input.
type FetchError struct {
	Source  string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job fetch error (%s): %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("job fetch error (%s): %s", e.Source, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
