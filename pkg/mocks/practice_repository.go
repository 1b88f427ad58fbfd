package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nexphase/nexcareer/pkg/practice"
)

// PracticeRepository mocks practice.Repository.
type PracticeRepository struct {
	mock.Mock
}

var _ practice.Repository = (*PracticeRepository)(nil)

func (m *PracticeRepository) FindByID(ctx context.Context, id uuid.UUID) (practice.Session, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(practice.Session), args.Error(1)
}

func (m *PracticeRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]practice.Session, error) {
	args := m.Called(ctx, userID)
	return sessions(args.Get(0)), args.Error(1)
}

func (m *PracticeRepository) FindByApplicationID(ctx context.Context, applicationID uuid.UUID) ([]practice.Session, error) {
	args := m.Called(ctx, applicationID)
	return sessions(args.Get(0)), args.Error(1)
}

func (m *PracticeRepository) Create(ctx context.Context, s practice.Session) (practice.Session, error) {
	args := m.Called(ctx, s)
	if fn, ok := args.Get(0).(func(context.Context, practice.Session) (practice.Session, error)); ok {
		return fn(ctx, s)
	}
	return args.Get(0).(practice.Session), args.Error(1)
}

func (m *PracticeRepository) UpdateQuestions(ctx context.Context, id uuid.UUID, questions []practice.Question) (practice.Session, error) {
	args := m.Called(ctx, id, questions)
	if fn, ok := args.Get(0).(func(context.Context, uuid.UUID, []practice.Question) (practice.Session, error)); ok {
		return fn(ctx, id, questions)
	}
	return args.Get(0).(practice.Session), args.Error(1)
}

func (m *PracticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func sessions(v any) []practice.Session {
	if v == nil {
		return nil
	}
	return v.([]practice.Session)
}
