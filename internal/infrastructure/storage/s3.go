// Package storage provides object storage for uploaded recipe files.
// It speaks the S3 API, which Backblaze B2 exposes as well.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"go.uber.org/zap"

	"github.com/saskialein/plan-to-plate/internal/infrastructure/config"
	"github.com/saskialein/plan-to-plate/internal/ports/outbound"
)

// S3Storage implements StorageService against an S3-compatible bucket
type S3Storage struct {
	client *s3.S3
	bucket string
	logger *zap.Logger
}

// NewS3Storage creates the storage adapter from the application config
func NewS3Storage(cfg *config.Config, logger *zap.Logger) (outbound.StorageService, error) {
	awsConfig := aws.NewConfig().
		WithRegion(cfg.Storage.Region).
		WithS3ForcePathStyle(cfg.Storage.ForcePathStyle)

	if cfg.Storage.Endpoint != "" {
		awsConfig = awsConfig.WithEndpoint(cfg.Storage.Endpoint)
	}
	if cfg.Storage.AccessKeyID != "" {
		awsConfig = awsConfig.WithCredentials(credentials.NewStaticCredentials(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			"",
		))
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage session: %w", err)
	}

	return &S3Storage{
		client: s3.New(sess),
		bucket: cfg.Storage.Bucket,
		logger: logger.Named("storage"),
	}, nil
}

// Upload stores an object and returns its key
func (s *S3Storage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObjectWithContext(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	s.logger.Debug("object uploaded",
		zap.String("key", key),
		zap.Int("size_bytes", len(data)),
	)

	return key, nil
}

// Download reads an object's content
func (s *S3Storage) Download(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download object %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return data, nil
}

// Delete removes an object
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

// GeneratePresignedURL returns a time-limited download URL for an object
func (s *S3Storage) GeneratePresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(expiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign object %s: %w", key, err)
	}

	return url, nil
}
