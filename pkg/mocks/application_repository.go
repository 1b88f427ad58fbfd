// Package mocks provides testify mocks for the repository and service ports.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nexphase/nexcareer/pkg/application"
)

// ApplicationRepository mocks application.Repository.
type ApplicationRepository struct {
	mock.Mock
}

var _ application.Repository = (*ApplicationRepository)(nil)

func (m *ApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(application.Application), args.Error(1)
}

func (m *ApplicationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	args := m.Called(ctx, userID)
	return apps(args.Get(0)), args.Error(1)
}

func (m *ApplicationRepository) FindByStatus(ctx context.Context, userID uuid.UUID, status application.Status) ([]application.Application, error) {
	args := m.Called(ctx, userID, status)
	return apps(args.Get(0)), args.Error(1)
}

func (m *ApplicationRepository) Search(ctx context.Context, userID uuid.UUID, keyword string) ([]application.Application, error) {
	args := m.Called(ctx, userID, keyword)
	return apps(args.Get(0)), args.Error(1)
}

func (m *ApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	args := m.Called(ctx, a)
	if fn, ok := args.Get(0).(func(context.Context, application.Application) (application.Application, error)); ok {
		return fn(ctx, a)
	}
	return args.Get(0).(application.Application), args.Error(1)
}

func (m *ApplicationRepository) CreateMany(ctx context.Context, list []application.Application) ([]application.Application, error) {
	args := m.Called(ctx, list)
	if fn, ok := args.Get(0).(func(context.Context, []application.Application) ([]application.Application, error)); ok {
		return fn(ctx, list)
	}
	return apps(args.Get(0)), args.Error(1)
}

func (m *ApplicationRepository) Update(ctx context.Context, id uuid.UUID, p application.Patch) (application.Application, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(application.Application), args.Error(1)
}

func (m *ApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ApplicationRepository) GetStats(ctx context.Context, userID uuid.UUID) (application.Stats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(application.Stats), args.Error(1)
}

func apps(v any) []application.Application {
	if v == nil {
		return nil
	}
	return v.([]application.Application)
}
