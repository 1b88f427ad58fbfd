package jwt

import (
	"context"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nexphase/nexcareer/pkg/auth"
)

// Authenticator resolves an access token to its user.
type Authenticator interface {
	GetCurrentUser(ctx context.Context, accessToken string) (auth.User, error)
}

// NewAuthMiddleware returns a Fiber middleware that validates the Bearer token.
// On success sets the user id into c.Locals("userId") and the raw token into
// c.Locals("token").
func NewAuthMiddleware(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "missing Authorization header"})
		}
		tokenStr := BearerToken(authHeader)
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "empty token"})
		}
		user, err := authn.GetCurrentUser(c.UserContext(), tokenStr)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
		}
		c.Locals("userId", user.ID)
		c.Locals("token", tokenStr)
		return c.Next()
	}
}

// BearerToken supports both "Bearer <token>" and "<token>" (no prefix).
func BearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) >= len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return strings.TrimSpace(header)
}

// UserID returns the id stored by the auth middleware.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals("userId").(uuid.UUID)
	return id, ok
}
