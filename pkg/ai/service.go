// Package ai is the port to the hosted language model used for chat,
// resume parsing and interview coaching. Every method reports failures in
// the returned envelope instead of a separate error.
package ai

import (
	"context"
	"time"

	"github.com/nexphase/nexcareer/pkg/result"
)

// Role is the author of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one conversational turn.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ResumeEducation is an education entry as read from a resume.
type ResumeEducation struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Field  string `json:"field"`
	Year   string `json:"year"`
}

// ResumeExperience is a work-history entry as read from a resume.
type ResumeExperience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// ResumeData is the structured content extracted from resume text.
// Empty strings mean the model found nothing for that field.
type ResumeData struct {
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone"`
	Summary    string             `json:"summary"`
	Skills     []string           `json:"skills"`
	Education  []ResumeEducation  `json:"education"`
	Experience []ResumeExperience `json:"experience"`
}

// QuestionParams steers interview question generation.
type QuestionParams struct {
	Type     string
	Count    int
	Company  string
	Position string
	Skills   []string
}

// Service is the AI port.
type Service interface {
	Chat(ctx context.Context, messages []Message) result.Result[string]
	ParseResume(ctx context.Context, text string) result.Result[*ResumeData]
	GenerateInterviewQuestions(ctx context.Context, p QuestionParams) result.Result[[]string]
	GenerateFeedback(ctx context.Context, question, answer string) result.Result[string]
}
