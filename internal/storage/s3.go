package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"po-backend/internal/config"
	"po-backend/internal/timeutil"
)

// AttachmentStore keeps uploaded invoice files in an S3-compatible
// bucket (AWS S3 or R2, selected by the endpoint).
type AttachmentStore struct {
	client *s3.Client
	bucket string
}

func NewAttachmentStore(ctx context.Context, cfg *config.Config) (*AttachmentStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Storage.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure S3 client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
		}
	})

	return &AttachmentStore{client: client, bucket: cfg.Storage.Bucket}, nil
}

// Put uploads an attachment and returns the object key it was stored
// under. Keys are date-partitioned: invoices/2025/07/INV-000123_file.pdf
func (s *AttachmentStore) Put(ctx context.Context, invoiceNumber, filename string, body io.Reader, size int64, contentType string) (string, error) {
	now := timeutil.Now()
	key := path.Join("invoices", now.Format("2006"), now.Format("01"),
		fmt.Sprintf("%s_%s", invoiceNumber, filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload attachment: %w", err)
	}
	return key, nil
}

// Get streams an attachment back. The caller must close the reader.
func (s *AttachmentStore) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch attachment: %w", err)
	}
	contentType := "application/octet-stream"
	if resp.ContentType != nil {
		contentType = *resp.ContentType
	}
	return resp.Body, contentType, nil
}

// Delete removes an attachment
func (s *AttachmentStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
