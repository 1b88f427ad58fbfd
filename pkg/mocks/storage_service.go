package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/nexphase/nexcareer/pkg/filestore"
	"github.com/nexphase/nexcareer/pkg/result"
)

// StorageService mocks filestore.Service.
type StorageService struct {
	mock.Mock
}

var _ filestore.Service = (*StorageService)(nil)

func (m *StorageService) Upload(ctx context.Context, in filestore.UploadInput) result.Result[string] {
	return m.Called(ctx, in).Get(0).(result.Result[string])
}

func (m *StorageService) Delete(ctx context.Context, bucket, path string) result.Result[struct{}] {
	return m.Called(ctx, bucket, path).Get(0).(result.Result[struct{}])
}

func (m *StorageService) SignedURL(ctx context.Context, bucket, path string, expiresIn time.Duration) result.Result[string] {
	return m.Called(ctx, bucket, path, expiresIn).Get(0).(result.Result[string])
}
