package pipeline

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/voxlane/voxlane/pkg/synth"
	"github.com/voxlane/voxlane/pkg/transcribe"
)

// Stage identifies where in the pipeline a request failed.
type Stage string

const (
	StageIngest        Stage = "ingest"
	StageTranscription Stage = "transcription"
	StageReply         Stage = "reply"
	StageSynthesis     Stage = "synthesis"
)

// Sentinel errors for ingest validation.
var (
	// ErrEmptyAudio is returned when the audio payload is missing or empty.
	ErrEmptyAudio = errors.New("pipeline: audio payload missing or empty")

	// ErrBadEncoding is returned when the payload fails to decode from its
	// transport encoding.
	ErrBadEncoding = errors.New("pipeline: audio payload is not valid base64")
)

// Error is the single error envelope a failed run produces: a stage tag,
// an HTTP-equivalent status, and best-effort partial fields for
// diagnostics. The caller either gets a complete Result or one of these —
// never both.
type Error struct {
	Stage  Stage
	Status int
	Err    error

	// Partial results gathered before the failure, for diagnostics.
	Transcript string
	ReplyText  string
	Language   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("pipeline: %s stage failed: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// statusFor maps a stage error to its HTTP-equivalent status code.
func statusFor(stage Stage, err error) int {
	if stage == StageIngest && (errors.Is(err, ErrEmptyAudio) || errors.Is(err, ErrBadEncoding)) {
		return http.StatusBadRequest
	}

	// Provider status passes through when the backend reported one.
	var apiErr *synth.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= http.StatusBadRequest {
		return apiErr.StatusCode
	}

	return http.StatusInternalServerError
}

// IsTimeout reports whether the error is a transcription polling timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, transcribe.ErrTimedOut)
}
