package analysis

import "fmt"

// Error represents an analysis engine failure: the model call failed or the
// response was malformed. The caller's cached report for the mode must be
// left untouched.
type Error struct {
	Mode    Mode
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis error (%s): %s: %v", e.Mode, e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis error (%s): %s", e.Mode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
