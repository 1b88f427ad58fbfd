package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nexphase/nexcareer/api/http/presenter"
	"github.com/nexphase/nexcareer/pkg/apperr"
	"github.com/nexphase/nexcareer/pkg/security/jwt"
)

const errInvalidDate = apperr.ValidationError("Dates must be YYYY-MM-DD or RFC 3339")

// currentUser returns the id set by the auth middleware, writing a 401 when
// it is absent.
func currentUser(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := jwt.UserID(c)
	if !ok {
		_ = presenter.Error(c, http.StatusUnauthorized, "unable to identify user")
	}
	return id, ok
}

func pathID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		_ = presenter.Error(c, http.StatusBadRequest, "invalid "+name)
	}
	return id, err == nil
}

// parseDate accepts a calendar date or an RFC 3339 timestamp. nil and blank
// mean "no date".
func parseDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, errInvalidDate
}
