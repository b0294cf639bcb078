package report

import "fmt"

// InputUnavailableError indicates the source report document is missing,
// unparsable, or fails schema validation.
type InputUnavailableError struct {
	Path    string
	Message string
	Cause   error
}

func (e *InputUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("report input unavailable at %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("report input unavailable at %s: %s", e.Path, e.Message)
}

func (e *InputUnavailableError) Unwrap() error {
	return e.Cause
}

// PersistenceError indicates an artifact could not be written.
type PersistenceError struct {
	Path    string
	Message string
	Cause   error
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to persist %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to persist %s: %s", e.Path, e.Message)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}
