package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nexphase/nexcareer/pkg/profile"
)

// ProfileRepository mocks profile.Repository.
type ProfileRepository struct {
	mock.Mock
}

var _ profile.Repository = (*ProfileRepository)(nil)

func (m *ProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(profile.Profile), args.Error(1)
}

func (m *ProfileRepository) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	args := m.Called(ctx, p)
	if fn, ok := args.Get(0).(func(context.Context, profile.Profile) (profile.Profile, error)); ok {
		return fn(ctx, p)
	}
	return args.Get(0).(profile.Profile), args.Error(1)
}

func (m *ProfileRepository) Update(ctx context.Context, userID uuid.UUID, p profile.Patch) (profile.Profile, error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).(profile.Profile), args.Error(1)
}

func (m *ProfileRepository) Upsert(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	args := m.Called(ctx, p)
	if fn, ok := args.Get(0).(func(context.Context, profile.Profile) (profile.Profile, error)); ok {
		return fn(ctx, p)
	}
	return args.Get(0).(profile.Profile), args.Error(1)
}
