// Package storage provides object storage for transient request audio.
//
// Uploaded objects live only for the duration of a single pipeline run and
// are deleted best-effort during cleanup. The backing store is any
// S3-compatible service reachable through the minio client.
package storage

import "context"

// Ref points at an uploaded audio object.
type Ref struct {
	// Key is the object key inside the bucket.
	Key string

	// URI is the s3:// address handed to the transcription service.
	URI string
}

// Store is the minimal object-storage surface the pipeline needs.
type Store interface {
	// Put uploads data under key and returns a reference to it.
	Put(ctx context.Context, key string, data []byte, contentType string) (Ref, error)

	// Delete removes the object. Best-effort: callers log and swallow errors.
	Delete(ctx context.Context, key string) error
}
