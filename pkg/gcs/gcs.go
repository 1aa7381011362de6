// Package gcs uploads user-submitted images to Google Cloud Storage.
package gcs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// Uploader wraps a GCS bucket handle
type Uploader struct {
	client *storage.Client
	bucket string
}

// NewUploader creates a GCS client using application default credentials
// (GOOGLE_APPLICATION_CREDENTIALS or the metadata server).
func NewUploader(ctx context.Context, bucket string) (*Uploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("GCS bucket name is not configured")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &Uploader{client: client, bucket: bucket}, nil
}

// GenerateObjectName builds a unique object name preserving the original
// file extension, e.g. "events/5f1c....jpg".
func GenerateObjectName(prefix, originalName string) string {
	return fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), filepath.Ext(originalName))
}

// Upload writes data to the bucket and returns the public URL. With uniform
// bucket-level access, objects are public via bucket IAM policy, not ACLs.
func (u *Uploader) Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	w := u.client.Bucket(u.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, objectName), nil
}

// Delete removes an object. Missing objects are not an error so callers can
// clean up URLs that may already be gone.
func (u *Uploader) Delete(ctx context.Context, objectName string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := u.client.Bucket(u.bucket).Object(objectName).Delete(ctx)
	if err == storage.ErrObjectNotExist {
		return nil
	}
	return err
}

// Close releases the underlying client
func (u *Uploader) Close() error {
	return u.client.Close()
}
