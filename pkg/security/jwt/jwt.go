package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nexphase/nexcareer/pkg/auth"
)

const purposeObject = "object"

var errObjectMismatch = errors.New("token does not grant access to this object")

// Generator signs HS256 tokens for sign-in sessions, password resets and
// file download links.
type Generator struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	resetTTL  time.Duration
}

var _ auth.TokenIssuer = (*Generator)(nil)

func NewGenerator(secret, issuer string, accessTTL, resetTTL time.Duration) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer, accessTTL: accessTTL, resetTTL: resetTTL}
}

// Claims are the registered claims plus the flow the token was minted for.
type Claims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
}

func (g *Generator) Issue(ctx context.Context, userID uuid.UUID, purpose auth.Purpose) (string, time.Time, error) {
	ttl := g.accessTTL
	if purpose == auth.PurposeReset {
		ttl = g.resetTTL
	}
	return g.sign(userID.String(), string(purpose), ttl)
}

func (g *Generator) Parse(ctx context.Context, token string, purpose auth.Purpose) (auth.TokenClaims, error) {
	claims, err := g.parse(token, string(purpose))
	if err != nil {
		return auth.TokenClaims{}, auth.ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return auth.TokenClaims{}, auth.ErrInvalidToken
	}
	out := auth.TokenClaims{UserID: userID, TokenID: claims.ID, Purpose: purpose}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// SignObject issues a token granting read access to one stored object.
func (g *Generator) SignObject(key string, ttl time.Duration) (string, error) {
	tok, _, err := g.sign(key, purposeObject, ttl)
	return tok, err
}

func (g *Generator) VerifyObject(token, key string) error {
	claims, err := g.parse(token, purposeObject)
	if err != nil {
		return err
	}
	if claims.Subject != key {
		return errObjectMismatch
	}
	return nil
}

func (g *Generator) sign(subject, purpose string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    g.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Purpose: purpose,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (g *Generator) parse(tokenStr, purpose string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	}
	if g.issuer != "" {
		opts = append(opts, jwt.WithIssuer(g.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return g.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Purpose != purpose {
		return nil, errors.New("token purpose mismatch")
	}
	return claims, nil
}
