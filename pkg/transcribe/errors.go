package transcribe

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrTimedOut is returned when a job fails to reach a terminal state
	// within the polling budget.
	ErrTimedOut = errors.New("transcribe: job timed out")

	// ErrNoTranscript is returned when a completed job's document carries
	// no transcript.
	ErrNoTranscript = errors.New("transcribe: transcript document empty")
)

// JobError is returned when the service reports a job as FAILED.
type JobError struct {
	JobID  string
	Reason string
}

// Error implements the error interface.
func (e *JobError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("transcribe: job %s failed", e.JobID)
	}
	return fmt.Sprintf("transcribe: job %s failed: %s", e.JobID, e.Reason)
}
