package transcribe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awstranscribe "github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"
)

// awsAPI is the slice of the Amazon Transcribe client the service uses.
// Narrowed for test substitution.
type awsAPI interface {
	StartTranscriptionJob(ctx context.Context, in *awstranscribe.StartTranscriptionJobInput, optFns ...func(*awstranscribe.Options)) (*awstranscribe.StartTranscriptionJobOutput, error)
	GetTranscriptionJob(ctx context.Context, in *awstranscribe.GetTranscriptionJobInput, optFns ...func(*awstranscribe.Options)) (*awstranscribe.GetTranscriptionJobOutput, error)
	DeleteTranscriptionJob(ctx context.Context, in *awstranscribe.DeleteTranscriptionJobInput, optFns ...func(*awstranscribe.Options)) (*awstranscribe.DeleteTranscriptionJobOutput, error)
}

// AWS implements Service on Amazon Transcribe.
type AWS struct {
	api    awsAPI
	logger *slog.Logger
}

// NewAWS creates a transcription service backed by the given client.
func NewAWS(client *awstranscribe.Client, logger *slog.Logger) *AWS {
	if logger == nil {
		logger = slog.Default()
	}
	return &AWS{
		api:    client,
		logger: logger.With("component", "transcribe.aws"),
	}
}

// SubmitJob starts a transcription job with automatic language
// identification over the candidate list. The audio is always the fixed
// mp3 transport format.
func (a *AWS) SubmitJob(ctx context.Context, jobID, audioURI string, candidates []string) error {
	options := make([]types.LanguageCode, 0, len(candidates))
	for _, c := range candidates {
		options = append(options, types.LanguageCode(c))
	}

	_, err := a.api.StartTranscriptionJob(ctx, &awstranscribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobID),
		Media:                &types.Media{MediaFileUri: aws.String(audioURI)},
		MediaFormat:          types.MediaFormatMp3,
		IdentifyLanguage:     aws.Bool(true),
		LanguageOptions:      options,
	})
	if err != nil {
		return fmt.Errorf("transcribe: submit job %s: %w", jobID, err)
	}

	a.logger.Debug("submitted transcription job", "job_id", jobID, "audio_uri", audioURI)
	return nil
}

// GetJob returns the current snapshot of the job.
func (a *AWS) GetJob(ctx context.Context, jobID string) (Job, error) {
	out, err := a.api.GetTranscriptionJob(ctx, &awstranscribe.GetTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobID),
	})
	if err != nil {
		return Job{}, fmt.Errorf("transcribe: get job %s: %w", jobID, err)
	}

	tj := out.TranscriptionJob
	if tj == nil {
		return Job{}, fmt.Errorf("transcribe: get job %s: empty response", jobID)
	}

	job := Job{
		ID:            jobID,
		Status:        mapStatus(tj.TranscriptionJobStatus),
		LanguageCode:  string(tj.LanguageCode),
		FailureReason: aws.ToString(tj.FailureReason),
	}
	if tj.Transcript != nil {
		job.TranscriptURI = aws.ToString(tj.Transcript.TranscriptFileUri)
	}
	return job, nil
}

// DeleteJob removes the job. The service deletes the transcript document
// it produced along with the job record.
func (a *AWS) DeleteJob(ctx context.Context, jobID string) error {
	_, err := a.api.DeleteTranscriptionJob(ctx, &awstranscribe.DeleteTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobID),
	})
	if err != nil {
		return fmt.Errorf("transcribe: delete job %s: %w", jobID, err)
	}

	a.logger.Debug("deleted transcription job", "job_id", jobID)
	return nil
}

// mapStatus translates service statuses into the job lifecycle.
func mapStatus(s types.TranscriptionJobStatus) Status {
	switch s {
	case types.TranscriptionJobStatusQueued:
		return StatusSubmitted
	case types.TranscriptionJobStatusInProgress:
		return StatusInProgress
	case types.TranscriptionJobStatusCompleted:
		return StatusCompleted
	case types.TranscriptionJobStatusFailed:
		return StatusFailed
	default:
		return StatusInProgress
	}
}

// Verify AWS implements Service at compile time.
var _ Service = (*AWS)(nil)
