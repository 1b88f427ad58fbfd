package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexphase/nexcareer/pkg/auth"
)

type staticAuth map[string]auth.User

func (s staticAuth) GetCurrentUser(_ context.Context, token string) (auth.User, error) {
	u, ok := s[token]
	if !ok {
		return auth.User{}, auth.ErrInvalidToken
	}
	return u, nil
}

func TestAuthMiddleware(t *testing.T) {
	user := auth.User{ID: uuid.New()}
	app := fiber.New()
	app.Use(NewAuthMiddleware(staticAuth{"good": user}))
	app.Get("/me", func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		if !ok {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendString(id.String())
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"unknown", "Bearer bad", http.StatusUnauthorized},
		{"ok", "Bearer good", http.StatusOK},
		{"ok without scheme", "good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
