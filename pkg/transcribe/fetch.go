package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/voxlane/voxlane/internal/httpc"
)

// HTTPFetcher retrieves transcript documents over HTTP. The transcription
// service hands back a time-limited URI addressing a JSON document shaped
// as {"results": {"transcripts": [{"transcript": "..."}]}}.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher using the shared HTTP client.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{client: httpc.Client}
}

// transcriptDoc is the transcript document format.
type transcriptDoc struct {
	Results struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
	} `json:"results"`
}

// FetchTranscript dereferences uri and extracts the transcript text.
func (f *HTTPFetcher) FetchTranscript(ctx context.Context, uri string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return "", fmt.Errorf("transcribe: build transcript request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcribe: fetch transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcribe: fetch transcript: status %d", resp.StatusCode)
	}

	var doc transcriptDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("transcribe: decode transcript document: %w", err)
	}

	if len(doc.Results.Transcripts) == 0 || doc.Results.Transcripts[0].Transcript == "" {
		return "", ErrNoTranscript
	}
	return doc.Results.Transcripts[0].Transcript, nil
}

// Verify HTTPFetcher implements Fetcher at compile time.
var _ Fetcher = (*HTTPFetcher)(nil)
