package factory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nexphase/nexcareer/pkg/application"
	"github.com/nexphase/nexcareer/pkg/auth"
	"github.com/nexphase/nexcareer/pkg/factory"
	"github.com/nexphase/nexcareer/pkg/kv"
	"github.com/nexphase/nexcareer/pkg/mocks"
	"github.com/nexphase/nexcareer/pkg/resume"
	"github.com/nexphase/nexcareer/pkg/security/jwt"
)

func TestNewUseCases_WiresPorts(t *testing.T) {
	apps := &mocks.ApplicationRepository{}
	userID := uuid.New()
	apps.On("FindByUserID", mock.Anything, userID).Return([]application.Application{
		{Company: "Acme", Status: application.StatusInterview, CreatedAt: time.Now()},
	}, nil)

	uc := factory.NewUseCases(factory.Ports{
		Applications: apps,
		Profiles:     &mocks.ProfileRepository{},
		Sessions:     &mocks.PracticeRepository{},
		AI:           &mocks.AIService{},
		Storage:      &mocks.StorageService{},
		Parser:       resume.NewParser(),
		Tokens:       jwt.NewGenerator("s", "i", time.Hour, time.Hour),
		Revocations:  kv.NewMemory(),
		Notifier:     auth.LogNotifier{},
	})

	require.NotNil(t, uc.Applications)
	require.NotNil(t, uc.Profiles)
	require.NotNil(t, uc.Practice)
	require.NotNil(t, uc.Auth)

	prompts := uc.Chat.SuggestedPrompts(context.Background(), userID)
	assert.Contains(t, prompts[0], "Acme")
	apps.AssertExpectations(t)
}
