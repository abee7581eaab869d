package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig configures the S3-compatible storage client.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Secure    bool
	Logger    *slog.Logger
}

// Minio implements Store against an S3-compatible endpoint.
type Minio struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// NewMinio creates a storage client and ensures the bucket exists,
// creating it when missing.
func NewMinio(ctx context.Context, cfg MinioConfig) (*Minio, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage: endpoint required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: init client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("storage: create bucket %q: %w", cfg.Bucket, err)
		}
		logger.Info("created storage bucket", "bucket", cfg.Bucket)
	}

	return &Minio{
		client: client,
		bucket: cfg.Bucket,
		logger: logger.With("component", "storage.minio"),
	}, nil
}

// Put uploads data under key and returns a reference to it.
func (m *Minio) Put(ctx context.Context, key string, data []byte, contentType string) (Ref, error) {
	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return Ref{}, fmt.Errorf("storage: upload %q: %w", key, err)
	}

	m.logger.Debug("uploaded object", "key", key, "bytes", len(data))

	return Ref{
		Key: key,
		URI: fmt.Sprintf("s3://%s/%s", m.bucket, key),
	}, nil
}

// Delete removes the object from the bucket.
func (m *Minio) Delete(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage: delete %q: %w", key, err)
	}
	return nil
}

// Verify Minio implements Store at compile time.
var _ Store = (*Minio)(nil)
