package practice

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nexphase/nexcareer/pkg/ai"
	"github.com/nexphase/nexcareer/pkg/application"
	"github.com/nexphase/nexcareer/pkg/apperr"
	"github.com/nexphase/nexcareer/pkg/profile"
)

const (
	DefaultQuestionCount = 5
	MaxQuestionCount     = 20
)

const (
	errInvalidType    = apperr.ValidationError("Invalid interview type")
	errQuestionCount  = apperr.ValidationError("Question count must be between 1 and 20")
	errQuestionIndex  = apperr.ValidationError("Invalid question index")
	errAnswerRequired = apperr.ValidationError("Answer is required")
)

var errNoQuestions = errors.New("AI returned no questions")

type UseCase interface {
	Start(ctx context.Context, in StartInput) (Session, error)
	SubmitAnswer(ctx context.Context, in SubmitInput) (SubmitResult, error)
	List(ctx context.Context, userID uuid.UUID, applicationID *uuid.UUID) ([]Session, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// StartInput describes a new session. A zero QuestionCount means
// DefaultQuestionCount.
type StartInput struct {
	UserID        uuid.UUID
	Type          InterviewType
	ApplicationID *uuid.UUID
	QuestionCount int
}

type SubmitInput struct {
	UserID        uuid.UUID
	SessionID     uuid.UUID
	QuestionIndex int
	Answer        string
}

type SubmitResult struct {
	Session  Session `json:"session"`
	Feedback string  `json:"feedback"`
}

type service struct {
	sessions     Repository
	applications application.Repository
	profiles     profile.Repository
	ai           ai.Service
	now          func() time.Time
}

func NewService(sessions Repository, applications application.Repository, profiles profile.Repository, aiSvc ai.Service) UseCase {
	return &service{
		sessions:     sessions,
		applications: applications,
		profiles:     profiles,
		ai:           aiSvc,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Start generates questions and stores a new session. An application id that
// is unknown or belongs to someone else is ignored: the session is neither
// linked to it nor given its company context.
func (s *service) Start(ctx context.Context, in StartInput) (Session, error) {
	if !in.Type.Valid() {
		return Session{}, errInvalidType
	}
	count := in.QuestionCount
	if count == 0 {
		count = DefaultQuestionCount
	}
	if count < 1 || count > MaxQuestionCount {
		return Session{}, errQuestionCount
	}

	params := ai.QuestionParams{Type: string(in.Type), Count: count}

	var linked *uuid.UUID
	if in.ApplicationID != nil {
		app, err := s.applications.FindByID(ctx, *in.ApplicationID)
		switch {
		case err == nil && app.UserID == in.UserID:
			params.Company = app.Company
			params.Position = app.Position
			id := app.ID
			linked = &id
		case err != nil && !errors.Is(err, apperr.ErrNotFound):
			return Session{}, err
		}
	}

	if in.Type == TypeTechnical {
		p, err := s.profiles.FindByUserID(ctx, in.UserID)
		switch {
		case err == nil && len(p.Skills) > 0:
			params.Skills = p.Skills
		case err != nil && !errors.Is(err, apperr.ErrNotFound):
			return Session{}, err
		}
	}

	gen := s.ai.GenerateInterviewQuestions(ctx, params)
	if gen.Failed() {
		return Session{}, fmt.Errorf("failed to generate interview questions: %w", gen.Err)
	}
	questions := make([]Question, 0, len(gen.Data))
	for _, text := range gen.Data {
		if text = strings.TrimSpace(text); text != "" {
			questions = append(questions, Question{Question: text})
		}
	}
	if len(questions) == 0 {
		return Session{}, errNoQuestions
	}

	return s.sessions.Create(ctx, Session{
		ID:            uuid.New(),
		UserID:        in.UserID,
		ApplicationID: linked,
		Type:          in.Type,
		Questions:     questions,
		CreatedAt:     s.now(),
	})
}

// SubmitAnswer stores the answer and the model's feedback for one question.
// The stored question list is replaced as a whole; the loaded one is never
// modified.
func (s *service) SubmitAnswer(ctx context.Context, in SubmitInput) (SubmitResult, error) {
	session, err := s.owned(ctx, in.SessionID, in.UserID)
	if err != nil {
		return SubmitResult{}, err
	}
	if in.QuestionIndex < 0 || in.QuestionIndex >= len(session.Questions) {
		return SubmitResult{}, errQuestionIndex
	}
	answer := strings.TrimSpace(in.Answer)
	if answer == "" {
		return SubmitResult{}, errAnswerRequired
	}

	q := session.Questions[in.QuestionIndex]
	fb := s.ai.GenerateFeedback(ctx, q.Question, answer)
	if fb.Failed() {
		return SubmitResult{}, fmt.Errorf("failed to generate feedback: %w", fb.Err)
	}
	feedback := fb.Data

	questions := slices.Clone(session.Questions)
	questions[in.QuestionIndex] = Question{Question: q.Question, Answer: &answer, Feedback: &feedback}

	updated, err := s.sessions.UpdateQuestions(ctx, session.ID, questions)
	if err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{Session: updated, Feedback: feedback}, nil
}

// List filters by owner again when querying by application, since the
// repository lookup is keyed by application only.
func (s *service) List(ctx context.Context, userID uuid.UUID, applicationID *uuid.UUID) ([]Session, error) {
	if applicationID == nil {
		return s.sessions.FindByUserID(ctx, userID)
	}
	all, err := s.sessions.FindByApplicationID(ctx, *applicationID)
	if err != nil {
		return nil, err
	}
	out := make([]Session, 0, len(all))
	for _, sess := range all {
		if sess.UserID == userID {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id, userID uuid.UUID) (*Session, error) {
	sess, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if sess.UserID != userID {
		return nil, nil
	}
	return &sess, nil
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, id)
}

func (s *service) owned(ctx context.Context, id, userID uuid.UUID) (Session, error) {
	sess, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if sess.UserID != userID {
		return Session{}, apperr.ErrForbidden
	}
	return sess, nil
}
