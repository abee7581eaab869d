// Package transcribe manages asynchronous speech-to-text jobs.
//
// A job is submitted with a candidate-language list and the service picks
// the spoken language itself. The job is then driven to a terminal state by
// a bounded polling loop (see Runner): fixed interval, fixed attempt budget,
// never an unbounded retry. On completion the transcript document is fetched
// from the URI the service returns and parsed for the transcript text and
// the detected language. Jobs and their transcript artifacts are transient:
// once a run ends the job is deleted best-effort, whatever the outcome.
package transcribe

import "context"

// Status is the lifecycle state of a transcription job.
type Status string

const (
	StatusSubmitted  Status = "SUBMITTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
	StatusTimedOut   Status = "TIMED_OUT"
)

// Terminal reports whether the status ends the job lifecycle.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusTimedOut:
		return true
	default:
		return false
	}
}

// Job is a snapshot of a transcription job as reported by the service.
// LanguageCode and TranscriptURI are set only on COMPLETED; FailureReason
// only on FAILED.
type Job struct {
	ID            string
	Status        Status
	LanguageCode  string
	TranscriptURI string
	FailureReason string
}

// Result is the output of a successfully completed job.
type Result struct {
	// Transcript is the recognized text.
	Transcript string

	// Language is the language code the service detected (e.g. "en-US").
	Language string
}

// Service is the asynchronous transcription collaborator.
type Service interface {
	// SubmitJob starts a job for the audio at audioURI, asking the service
	// to identify the spoken language from the candidate list.
	SubmitJob(ctx context.Context, jobID, audioURI string, candidates []string) error

	// GetJob returns the current snapshot of the job.
	GetJob(ctx context.Context, jobID string) (Job, error)

	// DeleteJob removes the job and its service-managed transcript
	// artifact. Best-effort: callers log and swallow errors.
	DeleteJob(ctx context.Context, jobID string) error
}

// Fetcher retrieves and parses the transcript document a completed job
// points at.
type Fetcher interface {
	FetchTranscript(ctx context.Context, uri string) (string, error)
}

// DefaultLanguageOptions is the fixed candidate set handed to the service
// for automatic language identification.
var DefaultLanguageOptions = []string{
	"en-US", "es-US", "fr-FR", "de-DE", "it-IT",
	"pt-BR", "ja-JP", "ko-KR", "zh-CN", "hi-IN", "ar-SA",
}
