package pipeline

// EmptyOutputError indicates the completion service produced a blank
// narrative; nothing is written in that case.
type EmptyOutputError struct{}

func (e *EmptyOutputError) Error() string {
	return "completion service returned empty output"
}
