package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nexphase/nexcareer/pkg/ai"
	"github.com/nexphase/nexcareer/pkg/result"
)

// AIService mocks ai.Service.
type AIService struct {
	mock.Mock
}

var _ ai.Service = (*AIService)(nil)

func (m *AIService) Chat(ctx context.Context, messages []ai.Message) result.Result[string] {
	return m.Called(ctx, messages).Get(0).(result.Result[string])
}

func (m *AIService) ParseResume(ctx context.Context, text string) result.Result[*ai.ResumeData] {
	return m.Called(ctx, text).Get(0).(result.Result[*ai.ResumeData])
}

func (m *AIService) GenerateInterviewQuestions(ctx context.Context, p ai.QuestionParams) result.Result[[]string] {
	return m.Called(ctx, p).Get(0).(result.Result[[]string])
}

func (m *AIService) GenerateFeedback(ctx context.Context, question, answer string) result.Result[string] {
	return m.Called(ctx, question, answer).Get(0).(result.Result[string])
}
