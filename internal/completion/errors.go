package completion

import (
	"fmt"
	"net/http"
	"time"
)

// InvalidArgumentError indicates the caller supplied an unusable input,
// detected before any network activity.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Message)
}

// MissingCredentialError indicates no API credential could be resolved from
// configuration.
type MissingCredentialError struct {
	Name string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s is missing; add it to the environment and restart the process", e.Name)
}

// TimeoutError indicates the completion service did not respond within the
// configured bound. It is distinct from generic transport failures so callers
// can tell "unreachable" from "slow".
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("completion request timed out after %s", e.Timeout)
}

// UpstreamError indicates the completion service answered with a non-success
// HTTP status. Body carries the response body text when one was available.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("completion service error: %d %s :: %s", e.Status, http.StatusText(e.Status), e.Body)
	}
	return fmt.Sprintf("completion service error: %d %s", e.Status, http.StatusText(e.Status))
}
