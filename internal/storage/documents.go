// Package storage stores license documents as opaque blobs in S3, keyed by
// generated filenames.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"staffdesk/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type DocumentStorage struct {
	client *s3.Client
	bucket string
}

func NewDocumentStorage(client *s3.Client, bucket string) *DocumentStorage {
	return &DocumentStorage{
		client: client,
		bucket: bucket,
	}
}

// UploadLicense stores a driver's license document and returns the generated
// storage key. The original filename only contributes its extension.
func (s *DocumentStorage) UploadLicense(ctx context.Context, fileName string, body io.Reader, contentType string) (string, error) {

	key := fmt.Sprintf("licenses/%s%s", utils.NanoID(), path.Ext(fileName))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload license document: %w", err)
	}

	return key, nil
}

// Fetch streams a stored document. The caller owns closing the reader.
func (s *DocumentStorage) Fetch(ctx context.Context, key string) (io.ReadCloser, string, error) {

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch document %s: %w", key, err)
	}

	return out.Body, aws.ToString(out.ContentType), nil
}

func (s *DocumentStorage) Delete(ctx context.Context, key string) error {

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", key, err)
	}

	return nil
}
