package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3AuditStore serves audit images from the liveness bucket
type S3AuditStore struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	now     func() time.Time
}

var _ AuditImageStore = (*S3AuditStore)(nil)

// NewS3AuditStore creates a store over bucket using an already resolved AWS config
func NewS3AuditStore(awsCfg aws.Config, bucket string) *S3AuditStore {
	client := s3.NewFromConfig(awsCfg)
	return &S3AuditStore{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		now:     time.Now,
	}
}

// Bucket returns the liveness bucket name
func (s *S3AuditStore) Bucket() string {
	return s.bucket
}

// DownloadLink presigns a GET for key. Signing is local and makes no request.
func (s *S3AuditStore) DownloadLink(ctx context.Context, key string, ttl time.Duration) (*DownloadLink, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return nil, fmt.Errorf("presign %s: %w", key, err)
	}

	link := &DownloadLink{
		URL:       req.URL,
		Method:    req.Method,
		ExpiresAt: s.now().Add(ttl),
	}
	for name, values := range req.SignedHeader {
		if len(values) == 0 {
			continue
		}
		if link.Headers == nil {
			link.Headers = make(map[string]string, len(req.SignedHeader))
		}
		link.Headers[name] = values[0]
	}
	return link, nil
}

// Exists reports whether key is in the bucket
func (s *S3AuditStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}
	return false, fmt.Errorf("head %s: %w", key, err)
}
