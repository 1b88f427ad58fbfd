package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nexphase/nexcareer/pkg/ai"
	"github.com/nexphase/nexcareer/pkg/application"
	"github.com/nexphase/nexcareer/pkg/apperr"
	"github.com/nexphase/nexcareer/pkg/profile"
)

// Message is a chat turn. Chat history is owned by the caller and never
// stored server-side.
type Message = ai.Message

const (
	MaxMessageLength = 2000
	historyWindow    = 10
	maxSuggestions   = 4
)

const (
	errMessageRequired = apperr.ValidationError("Message is required")
	errMessageTooLong  = apperr.ValidationError("Message is too long (max 2000 characters)")
)

var defaultPrompts = []string{
	"How can I improve my resume?",
	"What should I ask at the end of an interview?",
	"How do I negotiate a job offer?",
}

type UseCase interface {
	Send(ctx context.Context, in SendInput) (SendResult, error)
	SuggestedPrompts(ctx context.Context, userID uuid.UUID) []string
}

type SendInput struct {
	UserID  uuid.UUID
	Message string
	History []Message
}

type SendResult struct {
	Response string    `json:"response"`
	History  []Message `json:"history"`
}

type service struct {
	profiles     profile.Repository
	applications application.Repository
	ai           ai.Service
	now          func() time.Time
}

func NewService(profiles profile.Repository, applications application.Repository, aiSvc ai.Service) UseCase {
	return &service{
		profiles:     profiles,
		applications: applications,
		ai:           aiSvc,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Send answers one user message. The system turn carrying the user's profile
// and applications is rebuilt on every call and is not part of the returned
// history.
func (s *service) Send(ctx context.Context, in SendInput) (SendResult, error) {
	text := strings.TrimSpace(in.Message)
	if text == "" {
		return SendResult{}, errMessageRequired
	}
	// padding counts towards the limit
	if utf8.RuneCountInString(in.Message) > MaxMessageLength {
		return SendResult{}, errMessageTooLong
	}

	var (
		prof *profile.Profile
		apps []application.Application
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.profiles.FindByUserID(gctx, in.UserID)
		if errors.Is(err, apperr.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		prof = &p
		return nil
	})
	g.Go(func() error {
		list, err := s.applications.FindByUserID(gctx, in.UserID)
		if err != nil {
			return err
		}
		apps = recent(list, maxPromptApplications)
		return nil
	})
	if err := g.Wait(); err != nil {
		return SendResult{}, fmt.Errorf("failed to load chat context: %w", err)
	}

	now := s.now()
	userTurn := Message{Role: ai.RoleUser, Content: text, Timestamp: now}

	messages := make([]Message, 0, historyWindow+2)
	messages = append(messages, Message{Role: ai.RoleSystem, Content: systemPrompt(prof, apps), Timestamp: now})
	messages = append(messages, window(in.History, historyWindow)...)
	messages = append(messages, userTurn)

	reply := s.ai.Chat(ctx, messages)
	if reply.Failed() {
		return SendResult{}, fmt.Errorf("failed to get AI response: %w", reply.Err)
	}

	history := make([]Message, 0, len(in.History)+2)
	history = append(history, in.History...)
	history = append(history, userTurn, Message{Role: ai.RoleAssistant, Content: reply.Data, Timestamp: s.now()})
	return SendResult{Response: reply.Data, History: history}, nil
}

// SuggestedPrompts never fails; on a repository error it falls back to the
// default prompts.
func (s *service) SuggestedPrompts(ctx context.Context, userID uuid.UUID) []string {
	prompts := slices.Clone(defaultPrompts)

	apps, err := s.applications.FindByUserID(ctx, userID)
	if err != nil {
		log.Printf("chat: suggested prompts for %s: %v", userID, err)
		return prompts
	}

	if a, ok := firstWithStatus(apps, application.StatusInterview); ok {
		prompts = append([]string{fmt.Sprintf("How should I prepare for my interview at %s?", a.Company)}, prompts...)
	}
	if a, ok := firstWithStatus(apps, application.StatusApplied); ok {
		prompts = append(prompts, fmt.Sprintf("Should I follow up on my application to %s?", a.Company))
	}
	if len(prompts) > maxSuggestions {
		prompts = prompts[:maxSuggestions]
	}
	return prompts
}

// window returns the last n non-system turns of history.
func window(history []Message, n int) []Message {
	turns := make([]Message, 0, len(history))
	for _, m := range history {
		if m.Role != ai.RoleSystem {
			turns = append(turns, m)
		}
	}
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	return turns
}

// recent returns up to n applications, newest first.
func recent(apps []application.Application, n int) []application.Application {
	sorted := slices.Clone(apps)
	slices.SortStableFunc(sorted, func(a, b application.Application) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func firstWithStatus(apps []application.Application, status application.Status) (application.Application, bool) {
	for _, a := range recent(apps, len(apps)) {
		if a.Status == status {
			return a, true
		}
	}
	return application.Application{}, false
}
