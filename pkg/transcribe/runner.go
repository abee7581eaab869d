package transcribe

import (
	"context"
	"log/slog"
	"time"
)

// Polling defaults: 5 s between status checks, 120 checks maximum,
// a 10-minute ceiling overall.
const (
	DefaultPollInterval = 5 * time.Second
	DefaultMaxAttempts  = 120
)

// SleepFunc waits for d or until ctx is done. Injectable so tests can run
// the full attempt budget without wall-clock delay.
type SleepFunc func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Runner drives one transcription job from submission to a terminal state.
// It is the only component with a wait discipline: a bounded polling loop
// with a caller-visible maximum wait of interval × maxAttempts.
type Runner struct {
	service     Service
	fetcher     Fetcher
	interval    time.Duration
	maxAttempts int
	sleep       SleepFunc
	logger      *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithPollInterval sets the delay between status checks.
func WithPollInterval(d time.Duration) RunnerOption {
	return func(r *Runner) { r.interval = d }
}

// WithMaxAttempts sets the status-check budget.
func WithMaxAttempts(n int) RunnerOption {
	return func(r *Runner) { r.maxAttempts = n }
}

// WithSleep replaces the wait function.
func WithSleep(fn SleepFunc) RunnerOption {
	return func(r *Runner) { r.sleep = fn }
}

// WithFetcher replaces the transcript document fetcher.
func WithFetcher(f Fetcher) RunnerOption {
	return func(r *Runner) { r.fetcher = f }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a Runner with default polling bounds.
func NewRunner(service Service, opts ...RunnerOption) *Runner {
	r := &Runner{
		service:     service,
		fetcher:     NewHTTPFetcher(),
		interval:    DefaultPollInterval,
		maxAttempts: DefaultMaxAttempts,
		sleep:       defaultSleep,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "transcribe.runner")
	return r
}

// Run submits the job and polls it to a terminal state.
//
// COMPLETED yields the transcript and detected language. FAILED yields a
// *JobError carrying the service reason. Exhausting the attempt budget
// yields ErrTimedOut. Context cancellation aborts the wait immediately.
//
// The job and its transcript artifact must not outlive the request: once
// submission succeeded, the job is deleted best-effort on every exit path,
// even when ctx was cancelled mid-poll.
func (r *Runner) Run(ctx context.Context, jobID, audioURI string) (*Result, error) {
	if err := r.service.SubmitJob(ctx, jobID, audioURI, DefaultLanguageOptions); err != nil {
		return nil, err
	}

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := r.service.DeleteJob(cleanupCtx, jobID); err != nil {
			r.logger.Warn("job cleanup failed", "job_id", jobID, "error", err)
		}
	}()

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		job, err := r.service.GetJob(ctx, jobID)
		if err != nil {
			return nil, err
		}

		switch job.Status {
		case StatusCompleted:
			r.logger.Info("transcription completed",
				"job_id", jobID,
				"language", job.LanguageCode,
				"attempts", attempt,
			)
			transcript, err := r.fetcher.FetchTranscript(ctx, job.TranscriptURI)
			if err != nil {
				return nil, err
			}
			return &Result{Transcript: transcript, Language: job.LanguageCode}, nil

		case StatusFailed:
			return nil, &JobError{JobID: jobID, Reason: job.FailureReason}

		default:
			r.logger.Debug("transcription pending",
				"job_id", jobID,
				"status", string(job.Status),
				"attempt", attempt,
			)
		}

		if err := r.sleep(ctx, r.interval); err != nil {
			return nil, err
		}
	}

	r.logger.Warn("transcription polling budget exhausted",
		"job_id", jobID,
		"attempts", r.maxAttempts,
	)
	return nil, ErrTimedOut
}
