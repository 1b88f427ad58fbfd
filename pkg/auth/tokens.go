package auth

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// Purpose keeps tokens minted for one flow from being accepted by another.
type Purpose string

const (
	PurposeAccess Purpose = "access"
	PurposeReset  Purpose = "reset"
)

// TokenClaims is the verified content of a token.
type TokenClaims struct {
	UserID    uuid.UUID
	TokenID   string
	Purpose   Purpose
	ExpiresAt time.Time
}

// TokenIssuer abstracts token creation and verification (e.g., JWT).
// Parse fails with ErrInvalidToken for bad, expired or wrong-purpose tokens.
type TokenIssuer interface {
	Issue(ctx context.Context, userID uuid.UUID, purpose Purpose) (token string, expiresAt time.Time, err error)
	Parse(ctx context.Context, token string, purpose Purpose) (TokenClaims, error)
}

// ResetNotifier delivers password-reset tokens to the account owner.
type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// LogNotifier writes reset links to the process log. Meant for local
// development where no mail transport is configured.
type LogNotifier struct {
	// LinkBase is prefixed to the token, e.g. "https://app.example/reset?token=".
	LinkBase string
}

func (n LogNotifier) SendPasswordReset(_ context.Context, email, token string) error {
	log.Printf("auth: password reset for %s: %s%s", email, n.LinkBase, token)
	return nil
}
