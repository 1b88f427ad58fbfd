package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexphase/nexcareer/pkg/apperr"
	"github.com/nexphase/nexcareer/pkg/kv"
)

const MinPasswordLength = 8

const (
	errInvalidEmail  = apperr.ValidationError("Invalid email address")
	errShortPassword = apperr.ValidationError("Password must be at least 8 characters")
)

// Service describes authentication and account recovery.
type Service interface {
	GetCurrentUser(ctx context.Context, accessToken string) (User, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignUp(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context, accessToken string) error
	ResetPassword(ctx context.Context, email string) error
	CompletePasswordReset(ctx context.Context, resetToken, newPassword string) error
}

type service struct {
	repo     UserRepository
	tokens   TokenIssuer
	revoked  kv.Store
	notifier ResetNotifier
	cost     int
	now      func() time.Time
}

// NewService returns the default Service. Revoked token ids are kept in
// revoked until the token would have expired anyway.
func NewService(repo UserRepository, tokens TokenIssuer, revoked kv.Store, notifier ResetNotifier) Service {
	return &service{
		repo:     repo,
		tokens:   tokens,
		revoked:  revoked,
		notifier: notifier,
		cost:     bcrypt.DefaultCost,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) GetCurrentUser(ctx context.Context, accessToken string) (User, error) {
	claims, err := s.verify(ctx, accessToken, PurposeAccess)
	if err != nil {
		return User{}, err
	}
	user, err := s.repo.GetByID(ctx, claims.UserID)
	if errors.Is(err, apperr.ErrNotFound) {
		return User{}, ErrInvalidToken
	}
	return user, err
}

func (s *service) SignIn(ctx context.Context, email, password string) (Session, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.session(ctx, user)
}

func (s *service) SignUp(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return Session{}, err
	}
	if len(password) < MinPasswordLength {
		return Session{}, errShortPassword
	}

	// Best-effort check; the unique index on email is the real guard.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return Session{}, ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return Session{}, err
	}
	user := User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return Session{}, err
	}
	return s.session(ctx, user)
}

func (s *service) SignOut(ctx context.Context, accessToken string) error {
	claims, err := s.verify(ctx, accessToken, PurposeAccess)
	if err != nil {
		return err
	}
	return s.revoke(ctx, claims)
}

// ResetPassword succeeds for unknown emails too, so the endpoint cannot be
// used to probe for accounts.
func (s *service) ResetPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	token, _, err := s.tokens.Issue(ctx, user.ID, PurposeReset)
	if err != nil {
		return err
	}
	if err := s.notifier.SendPasswordReset(ctx, user.Email, token); err != nil {
		return fmt.Errorf("send password reset: %w", err)
	}
	return nil
}

// CompletePasswordReset sets a new password. Each reset token works once.
func (s *service) CompletePasswordReset(ctx context.Context, resetToken, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return errShortPassword
	}
	claims, err := s.verify(ctx, resetToken, PurposeReset)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, claims.UserID, string(hash)); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return s.revoke(ctx, claims)
}

func (s *service) session(ctx context.Context, user User) (Session, error) {
	token, exp, err := s.tokens.Issue(ctx, user.ID, PurposeAccess)
	if err != nil {
		return Session{}, err
	}
	return Session{User: user, AccessToken: token, ExpiresAt: exp}, nil
}

func (s *service) verify(ctx context.Context, token string, purpose Purpose) (TokenClaims, error) {
	if strings.TrimSpace(token) == "" {
		return TokenClaims{}, ErrInvalidToken
	}
	claims, err := s.tokens.Parse(ctx, token, purpose)
	if err != nil {
		return TokenClaims{}, err
	}
	revoked, err := s.revoked.Exists(ctx, revokedKey(claims.TokenID))
	if err != nil {
		return TokenClaims{}, err
	}
	if revoked {
		return TokenClaims{}, ErrInvalidToken
	}
	return claims, nil
}

func (s *service) revoke(ctx context.Context, claims TokenClaims) error {
	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.revoked.Set(ctx, revokedKey(claims.TokenID), "1", ttl)
}

func revokedKey(tokenID string) string { return "revoked:" + tokenID }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errInvalidEmail
	}
	return nil
}
