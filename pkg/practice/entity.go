package practice

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InterviewType selects the flavour of generated questions.
type InterviewType string

const (
	TypeBehavioral      InterviewType = "behavioral"
	TypeTechnical       InterviewType = "technical"
	TypeCompanySpecific InterviewType = "company_specific"
)

var typeLabels = map[InterviewType]string{
	TypeBehavioral:      "Behavioral",
	TypeTechnical:       "Technical",
	TypeCompanySpecific: "Company-Specific",
}

func (t InterviewType) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// Label is the display name, or the raw value for unknown types.
func (t InterviewType) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Question is one generated question with the user's answer and the
// model's feedback once submitted.
type Question struct {
	Question string  `json:"question"`
	Answer   *string `json:"answer"`
	Feedback *string `json:"feedback"`
}

func (q Question) Answered() bool {
	return q.Answer != nil && strings.TrimSpace(*q.Answer) != ""
}

// Session is one interview-practice run. The number of questions is fixed
// at creation; answers are filled in place.
type Session struct {
	ID            uuid.UUID     `json:"id"`
	UserID        uuid.UUID     `json:"userId"`
	ApplicationID *uuid.UUID    `json:"applicationId"`
	Type          InterviewType `json:"type"`
	Questions     []Question    `json:"questions"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// CompletionPercentage is the share of answered questions, rounded to the
// nearest integer. An empty session is 0%.
func (s Session) CompletionPercentage() int {
	if len(s.Questions) == 0 {
		return 0
	}
	answered := 0
	for _, q := range s.Questions {
		if q.Answered() {
			answered++
		}
	}
	return int(math.Round(float64(answered) * 100 / float64(len(s.Questions))))
}

// IsComplete reports whether every question has an answer.
func (s Session) IsComplete() bool {
	if len(s.Questions) == 0 {
		return false
	}
	for _, q := range s.Questions {
		if !q.Answered() {
			return false
		}
	}
	return true
}

// Repository is the persistence port for practice sessions.
// FindByID returns apperr.ErrNotFound for unknown ids.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (Session, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]Session, error)
	FindByApplicationID(ctx context.Context, applicationID uuid.UUID) ([]Session, error)
	Create(ctx context.Context, s Session) (Session, error)
	UpdateQuestions(ctx context.Context, id uuid.UUID, questions []Question) (Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
