package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gradinvite/core/config"
	"gradinvite/core/logger"
	"gradinvite/core/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gosimple/slug"
)

// ObjectStorage accepts a binary blob plus filename and returns a
// retrievable URL. Used for event logos.
type ObjectStorage interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

type S3Storage struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3Storage builds an S3-compatible client from config. Returns nil when
// no bucket is configured, which disables logo upload.
func NewS3Storage(cfg config.StorageConfig) *S3Storage {
	if cfg.Bucket == "" {
		return nil
	}

	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	return &S3Storage{
		client:        s3.New(opts),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
}

func (s *S3Storage) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	key := fmt.Sprintf("logos/%s-%s%s", slug.Make(base), utils.GenerateID(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("S3Storage:Upload:Error:", err)
		return "", err
	}

	return s.publicBaseURL + "/" + key, nil
}
