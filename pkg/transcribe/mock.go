package transcribe

import (
	"context"
	"sync"
)

// MockService implements Service for testing. GetJob walks through the
// scripted snapshots in order, repeating the last one once exhausted.
type MockService struct {
	// SubmitFunc is called when SubmitJob is invoked. If nil, submission
	// succeeds.
	SubmitFunc func(ctx context.Context, jobID, audioURI string, candidates []string) error

	// DeleteFunc is called when DeleteJob is invoked. If nil, deletion
	// succeeds.
	DeleteFunc func(ctx context.Context, jobID string) error

	// Snapshots are returned by successive GetJob calls.
	Snapshots []Job

	mu         sync.Mutex
	submits    int
	statusGets int
	deletes    []string
}

// SubmitJob records the submission.
func (m *MockService) SubmitJob(ctx context.Context, jobID, audioURI string, candidates []string) error {
	m.mu.Lock()
	m.submits++
	m.mu.Unlock()
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, jobID, audioURI, candidates)
	}
	return nil
}

// GetJob returns the next scripted snapshot.
func (m *MockService) GetJob(ctx context.Context, jobID string) (Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.statusGets
	m.statusGets++
	if len(m.Snapshots) == 0 {
		return Job{ID: jobID, Status: StatusInProgress}, nil
	}
	if i >= len(m.Snapshots) {
		i = len(m.Snapshots) - 1
	}
	job := m.Snapshots[i]
	if job.ID == "" {
		job.ID = jobID
	}
	return job, nil
}

// DeleteJob records the deletion.
func (m *MockService) DeleteJob(ctx context.Context, jobID string) error {
	m.mu.Lock()
	m.deletes = append(m.deletes, jobID)
	m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, jobID)
	}
	return nil
}

// Submits returns the number of SubmitJob calls.
func (m *MockService) Submits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submits
}

// StatusChecks returns the number of GetJob calls.
func (m *MockService) StatusChecks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statusGets
}

// Deletes returns the job IDs passed to DeleteJob.
func (m *MockService) Deletes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.deletes))
	copy(out, m.deletes)
	return out
}

// MockFetcher implements Fetcher with a fixed transcript.
type MockFetcher struct {
	Transcript string
	Err        error

	mu      sync.Mutex
	fetches []string
}

// FetchTranscript returns the fixed transcript and records the URI.
func (m *MockFetcher) FetchTranscript(ctx context.Context, uri string) (string, error) {
	m.mu.Lock()
	m.fetches = append(m.fetches, uri)
	m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	return m.Transcript, nil
}

// Fetches returns the URIs fetched so far.
func (m *MockFetcher) Fetches() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.fetches))
	copy(out, m.fetches)
	return out
}

// Compile-time interface checks.
var (
	_ Service = (*MockService)(nil)
	_ Fetcher = (*MockFetcher)(nil)
)
