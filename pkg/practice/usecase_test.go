package practice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nexphase/nexcareer/pkg/ai"
	"github.com/nexphase/nexcareer/pkg/application"
	"github.com/nexphase/nexcareer/pkg/apperr"
	"github.com/nexphase/nexcareer/pkg/mocks"
	"github.com/nexphase/nexcareer/pkg/practice"
	"github.com/nexphase/nexcareer/pkg/profile"
	"github.com/nexphase/nexcareer/pkg/result"
)

type deps struct {
	sessions *mocks.PracticeRepository
	apps     *mocks.ApplicationRepository
	profiles *mocks.ProfileRepository
	ai       *mocks.AIService
	uc       practice.UseCase
}

func newDeps() deps {
	d := deps{
		sessions: &mocks.PracticeRepository{},
		apps:     &mocks.ApplicationRepository{},
		profiles: &mocks.ProfileRepository{},
		ai:       &mocks.AIService{},
	}
	d.uc = practice.NewService(d.sessions, d.apps, d.profiles, d.ai)
	return d
}

func echoCreate(_ context.Context, s practice.Session) (practice.Session, error) { return s, nil }

func TestStart_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   practice.StartInput
	}{
		{"unknown type", practice.StartInput{Type: "systems"}},
		{"negative count", practice.StartInput{Type: practice.TypeBehavioral, QuestionCount: -1}},
		{"too many", practice.StartInput{Type: practice.TypeBehavioral, QuestionCount: 21}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps()
			_, err := d.uc.Start(context.Background(), tt.in)
			assert.True(t, apperr.IsValidation(err))
			d.ai.AssertNotCalled(t, "GenerateInterviewQuestions", mock.Anything, mock.Anything)
		})
	}
}

func TestStart_DefaultsAndWrapsQuestions(t *testing.T) {
	d := newDeps()
	userID := uuid.New()
	d.ai.On("GenerateInterviewQuestions", mock.Anything, ai.QuestionParams{Type: "behavioral", Count: 5}).
		Return(result.Ok([]string{"Tell me about a conflict.", "  ", "Describe a failure."}))
	d.sessions.On("Create", mock.Anything, mock.Anything).Return(echoCreate)

	got, err := d.uc.Start(context.Background(), practice.StartInput{UserID: userID, Type: practice.TypeBehavioral})

	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.Nil(t, got.ApplicationID)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "Tell me about a conflict.", got.Questions[0].Question)
	assert.Nil(t, got.Questions[0].Answer)
	assert.Nil(t, got.Questions[0].Feedback)
}

func TestStart_OwnedApplicationAndSkillsGiveContext(t *testing.T) {
	d := newDeps()
	userID := uuid.New()
	appID := uuid.New()
	d.apps.On("FindByID", mock.Anything, appID).
		Return(application.Application{ID: appID, UserID: userID, Company: "Acme", Position: "SRE"}, nil)
	d.profiles.On("FindByUserID", mock.Anything, userID).
		Return(profile.Profile{UserID: userID, Skills: []string{"Go", "Kubernetes"}}, nil)
	d.ai.On("GenerateInterviewQuestions", mock.Anything, ai.QuestionParams{
		Type: "technical", Count: 3, Company: "Acme", Position: "SRE", Skills: []string{"Go", "Kubernetes"},
	}).Return(result.Ok([]string{"q1", "q2", "q3"}))
	d.sessions.On("Create", mock.Anything, mock.Anything).Return(echoCreate)

	got, err := d.uc.Start(context.Background(), practice.StartInput{
		UserID: userID, Type: practice.TypeTechnical, ApplicationID: &appID, QuestionCount: 3,
	})

	require.NoError(t, err)
	require.NotNil(t, got.ApplicationID)
	assert.Equal(t, appID, *got.ApplicationID)
	assert.Len(t, got.Questions, 3)
}

func TestStart_ForeignApplicationIsIgnored(t *testing.T) {
	d := newDeps()
	userID := uuid.New()
	appID := uuid.New()
	d.apps.On("FindByID", mock.Anything, appID).
		Return(application.Application{ID: appID, UserID: uuid.New(), Company: "Secret Corp"}, nil)
	d.ai.On("GenerateInterviewQuestions", mock.Anything, ai.QuestionParams{Type: "company_specific", Count: 5}).
		Return(result.Ok([]string{"q1"}))
	d.sessions.On("Create", mock.Anything, mock.Anything).Return(echoCreate)

	got, err := d.uc.Start(context.Background(), practice.StartInput{
		UserID: userID, Type: practice.TypeCompanySpecific, ApplicationID: &appID,
	})

	require.NoError(t, err)
	assert.Nil(t, got.ApplicationID)
}

func TestStart_AIFailures(t *testing.T) {
	boom := errors.New("rate limited")

	d := newDeps()
	d.ai.On("GenerateInterviewQuestions", mock.Anything, mock.Anything).Return(result.Fail[[]string](boom))
	_, err := d.uc.Start(context.Background(), practice.StartInput{Type: practice.TypeBehavioral})
	require.ErrorIs(t, err, boom)

	d = newDeps()
	d.ai.On("GenerateInterviewQuestions", mock.Anything, mock.Anything).Return(result.Ok([]string{}))
	_, err = d.uc.Start(context.Background(), practice.StartInput{Type: practice.TypeBehavioral})
	require.Error(t, err)

	d.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func sessionWith(userID uuid.UUID, n int) practice.Session {
	qs := make([]practice.Question, n)
	for i := range qs {
		qs[i] = practice.Question{Question: "q" + string(rune('1'+i))}
	}
	return practice.Session{ID: uuid.New(), UserID: userID, Type: practice.TypeBehavioral, Questions: qs}
}

func TestSubmitAnswer_ReplacesOneQuestion(t *testing.T) {
	d := newDeps()
	userID := uuid.New()
	sess := sessionWith(userID, 3)
	d.sessions.On("FindByID", mock.Anything, sess.ID).Return(sess, nil)
	d.ai.On("GenerateFeedback", mock.Anything, "q2", "my answer").Return(result.Ok("Good use of STAR."))
	d.sessions.On("UpdateQuestions", mock.Anything, sess.ID, mock.Anything).
		Return(func(_ context.Context, _ uuid.UUID, qs []practice.Question) (practice.Session, error) {
			out := sess
			out.Questions = qs
			return out, nil
		})

	got, err := d.uc.SubmitAnswer(context.Background(), practice.SubmitInput{
		UserID: userID, SessionID: sess.ID, QuestionIndex: 1, Answer: "  my answer ",
	})

	require.NoError(t, err)
	assert.Equal(t, "Good use of STAR.", got.Feedback)
	require.Len(t, got.Session.Questions, 3)
	assert.Equal(t, "my answer", *got.Session.Questions[1].Answer)
	assert.Equal(t, "Good use of STAR.", *got.Session.Questions[1].Feedback)
	assert.Nil(t, got.Session.Questions[0].Answer)
	assert.Nil(t, sess.Questions[1].Answer, "loaded session must stay untouched")
	assert.Equal(t, 33, got.Session.CompletionPercentage())
}

func TestSubmitAnswer_Errors(t *testing.T) {
	userID := uuid.New()

	t.Run("missing session", func(t *testing.T) {
		d := newDeps()
		id := uuid.New()
		d.sessions.On("FindByID", mock.Anything, id).Return(practice.Session{}, apperr.ErrNotFound)
		_, err := d.uc.SubmitAnswer(context.Background(), practice.SubmitInput{UserID: userID, SessionID: id, Answer: "a"})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("foreign session", func(t *testing.T) {
		d := newDeps()
		sess := sessionWith(uuid.New(), 2)
		d.sessions.On("FindByID", mock.Anything, sess.ID).Return(sess, nil)
		_, err := d.uc.SubmitAnswer(context.Background(), practice.SubmitInput{UserID: userID, SessionID: sess.ID, Answer: "a"})
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		d.ai.AssertNotCalled(t, "GenerateFeedback", mock.Anything, mock.Anything, mock.Anything)
	})

	for _, idx := range []int{-1, 2, 10} {
		d := newDeps()
		sess := sessionWith(userID, 2)
		d.sessions.On("FindByID", mock.Anything, sess.ID).Return(sess, nil)
		_, err := d.uc.SubmitAnswer(context.Background(), practice.SubmitInput{UserID: userID, SessionID: sess.ID, QuestionIndex: idx, Answer: "a"})
		assert.True(t, apperr.IsValidation(err), "index %d", idx)
		d.sessions.AssertNotCalled(t, "UpdateQuestions", mock.Anything, mock.Anything, mock.Anything)
		assert.Nil(t, sess.Questions[0].Answer)
	}

	t.Run("blank answer", func(t *testing.T) {
		d := newDeps()
		sess := sessionWith(userID, 2)
		d.sessions.On("FindByID", mock.Anything, sess.ID).Return(sess, nil)
		_, err := d.uc.SubmitAnswer(context.Background(), practice.SubmitInput{UserID: userID, SessionID: sess.ID, Answer: "   "})
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("feedback failure", func(t *testing.T) {
		d := newDeps()
		sess := sessionWith(userID, 2)
		boom := errors.New("boom")
		d.sessions.On("FindByID", mock.Anything, sess.ID).Return(sess, nil)
		d.ai.On("GenerateFeedback", mock.Anything, "q1", "a").Return(result.Fail[string](boom))
		_, err := d.uc.SubmitAnswer(context.Background(), practice.SubmitInput{UserID: userID, SessionID: sess.ID, Answer: "a"})
		assert.ErrorIs(t, err, boom)
		d.sessions.AssertNotCalled(t, "UpdateQuestions", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestList_ReFiltersByOwner(t *testing.T) {
	d := newDeps()
	userID := uuid.New()
	appID := uuid.New()
	mine := practice.Session{ID: uuid.New(), UserID: userID}
	theirs := practice.Session{ID: uuid.New(), UserID: uuid.New()}
	d.sessions.On("FindByApplicationID", mock.Anything, appID).Return([]practice.Session{mine, theirs}, nil)

	got, err := d.uc.List(context.Background(), userID, &appID)

	require.NoError(t, err)
	assert.Equal(t, []practice.Session{mine}, got)
}

func TestGetAndDelete_Ownership(t *testing.T) {
	d := newDeps()
	userID := uuid.New()
	foreign := practice.Session{ID: uuid.New(), UserID: uuid.New()}
	d.sessions.On("FindByID", mock.Anything, foreign.ID).Return(foreign, nil)

	got, err := d.uc.Get(context.Background(), foreign.ID, userID)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = d.uc.Delete(context.Background(), foreign.ID, userID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	d.sessions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
