package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexphase/nexcareer/pkg/apperr"
	"github.com/nexphase/nexcareer/pkg/kv"
)

type memUsers struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]User
	email map[string]uuid.UUID
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uuid.UUID]User{}, email: map[string]uuid.UUID{}}
}

func (r *memUsers) Create(_ context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.email[u.Email]; ok {
		return ErrUserAlreadyExists
	}
	r.byID[u.ID] = u
	r.email[u.Email] = u.ID
	return nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.email[email]
	if !ok {
		return User{}, apperr.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *memUsers) GetByID(_ context.Context, id uuid.UUID) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return User{}, apperr.ErrNotFound
	}
	return u, nil
}

func (r *memUsers) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return apperr.ErrNotFound
	}
	u.PasswordHash = hash
	r.byID[id] = u
	return nil
}

// plainTokens encodes claims in a lookup table instead of signing them.
type plainTokens struct {
	mu     sync.Mutex
	issued map[string]TokenClaims
}

func (p *plainTokens) Issue(_ context.Context, userID uuid.UUID, purpose Purpose) (string, time.Time, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.issued == nil {
		p.issued = map[string]TokenClaims{}
	}
	tok := uuid.NewString()
	exp := time.Now().Add(time.Hour)
	p.issued[tok] = TokenClaims{UserID: userID, TokenID: tok, Purpose: purpose, ExpiresAt: exp}
	return tok, exp, nil
}

func (p *plainTokens) Parse(_ context.Context, token string, purpose Purpose) (TokenClaims, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.issued[token]
	if !ok || c.Purpose != purpose {
		return TokenClaims{}, ErrInvalidToken
	}
	return c, nil
}

type capturedReset struct {
	email, token string
	err          error
}

func (c *capturedReset) SendPasswordReset(_ context.Context, email, token string) error {
	c.email, c.token = email, token
	return c.err
}

type fixture struct {
	svc      Service
	users    *memUsers
	notifier *capturedReset
}

func newFixture() fixture {
	users := newMemUsers()
	notifier := &capturedReset{}
	svc := NewService(users, &plainTokens{}, kv.NewMemory(), notifier).(*service)
	svc.cost = bcrypt.MinCost
	return fixture{svc: svc, users: users, notifier: notifier}
}

func TestSignUpAndSignIn(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	up, err := f.svc.SignUp(ctx, "  Jane@Example.com ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", up.User.Email)
	assert.NotEmpty(t, up.AccessToken)
	assert.NotEqual(t, "correct horse", up.User.PasswordHash)

	in, err := f.svc.SignIn(ctx, "JANE@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, up.User.ID, in.User.ID)

	me, err := f.svc.GetCurrentUser(ctx, in.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, up.User.ID, me.ID)
}

func TestSignUp_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.SignUp(ctx, "not-an-email", "longenough")
	assert.True(t, apperr.IsValidation(err))

	_, err = f.svc.SignUp(ctx, "a@b.co", "short")
	assert.True(t, apperr.IsValidation(err))

	_, err = f.svc.SignUp(ctx, "a@b.co", "longenough")
	require.NoError(t, err)
	_, err = f.svc.SignUp(ctx, "A@B.co", "longenough")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.SignUp(ctx, "a@b.co", "longenough")
	require.NoError(t, err)

	_, err = f.svc.SignIn(ctx, "a@b.co", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.SignIn(ctx, "nobody@b.co", "longenough")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignOut_RevokesToken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s, err := f.svc.SignUp(ctx, "a@b.co", "longenough")
	require.NoError(t, err)

	require.NoError(t, f.svc.SignOut(ctx, s.AccessToken))

	_, err = f.svc.GetCurrentUser(ctx, s.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, f.svc.SignOut(ctx, s.AccessToken), ErrInvalidToken)
}

func TestGetCurrentUser_RejectsGarbage(t *testing.T) {
	f := newFixture()
	_, err := f.svc.GetCurrentUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = f.svc.GetCurrentUser(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordReset(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s, err := f.svc.SignUp(ctx, "a@b.co", "longenough")
	require.NoError(t, err)

	require.NoError(t, f.svc.ResetPassword(ctx, "A@b.co"))
	require.Equal(t, "a@b.co", f.notifier.email)
	resetToken := f.notifier.token

	_, err = f.svc.GetCurrentUser(ctx, resetToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "reset token is not an access token")

	assert.True(t, apperr.IsValidation(f.svc.CompletePasswordReset(ctx, resetToken, "short")))
	require.NoError(t, f.svc.CompletePasswordReset(ctx, resetToken, "brand new pass"))
	assert.ErrorIs(t, f.svc.CompletePasswordReset(ctx, resetToken, "another pass"), ErrInvalidToken)

	_, err = f.svc.SignIn(ctx, "a@b.co", "longenough")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	in, err := f.svc.SignIn(ctx, "a@b.co", "brand new pass")
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, in.User.ID)
}

func TestResetPassword_UnknownEmailIsSilent(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.svc.ResetPassword(context.Background(), "ghost@b.co"))
	assert.Empty(t, f.notifier.token)
}

func TestResetPassword_NotifierFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.SignUp(ctx, "a@b.co", "longenough")
	require.NoError(t, err)
	f.notifier.err = errors.New("smtp down")

	assert.Error(t, f.svc.ResetPassword(ctx, "a@b.co"))
}
