package middleware

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/nexphase/nexcareer/api/http/presenter"
	"github.com/nexphase/nexcareer/pkg/security/jwt"
)

// NewRateLimit allows max requests per window for each signed-in user, or
// per client IP on anonymous routes. A nil storage keeps counters in
// process memory.
func NewRateLimit(max int, window time.Duration, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          max,
		Expiration:   window,
		KeyGenerator: RateLimitKey,
		Storage:      storage,
		LimitReached: func(c *fiber.Ctx) error {
			return presenter.Error(c, http.StatusTooManyRequests, "too many requests")
		},
	})
}

// RateLimitKey buckets requests by user id when the auth middleware ran
// first, otherwise by client IP.
func RateLimitKey(c *fiber.Ctx) string {
	if id, ok := jwt.UserID(c); ok {
		return "ratelimit:user:" + id.String()
	}
	return "ratelimit:ip:" + c.IP()
}
