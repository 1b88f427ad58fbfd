// Package filestore is the port to object storage for uploaded files.
package filestore

import (
	"context"
	"time"

	"github.com/nexphase/nexcareer/pkg/result"
)

// UploadInput describes one object to store. With Upsert false an existing
// object at Path is an error.
type UploadInput struct {
	Bucket      string
	Path        string
	Data        []byte
	ContentType string
	Upsert      bool
}

// Service is the storage port. Upload returns the object's public URL.
type Service interface {
	Upload(ctx context.Context, in UploadInput) result.Result[string]
	Delete(ctx context.Context, bucket, path string) result.Result[struct{}]
	SignedURL(ctx context.Context, bucket, path string, expiresIn time.Duration) result.Result[string]
}
