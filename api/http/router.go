package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexphase/nexcareer/api/http/handlers"
)

// Handlers bundles everything Register mounts.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
	Applications *handlers.ApplicationHandler
	Profile      *handlers.ProfileHandler
	Chat         *handlers.ChatHandler
	Practice     *handlers.PracticeHandler
	Files        *handlers.FileHandler
}

// Register wires all HTTP routes onto given Fiber app. authMW guards every
// user-scoped route; limit runs after it so that limits are per user.
func Register(app *fiber.App, h Handlers, authMW, limit fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/signup", limit, h.Auth.SignUp)
	a.Post("/signin", limit, h.Auth.SignIn)
	a.Post("/password/reset", limit, h.Auth.ResetPassword)
	a.Post("/password/reset/complete", limit, h.Auth.CompletePasswordReset)
	a.Post("/signout", authMW, h.Auth.SignOut)
	a.Get("/me", authMW, h.Auth.Me)

	// Signed links carry their own credential.
	v1.Get("/files/:bucket/*", h.Files.Download)

	apps := v1.Group("/applications", authMW, limit)
	apps.Post("/", h.Applications.Create)
	apps.Get("/", h.Applications.List)
	apps.Get("/search", h.Applications.Search)
	apps.Get("/stats", h.Applications.Stats)
	apps.Get("/follow-ups", h.Applications.FollowUps)
	apps.Post("/import", h.Applications.Import)
	apps.Get("/:id", h.Applications.Get)
	apps.Patch("/:id", h.Applications.Update)
	apps.Delete("/:id", h.Applications.Delete)
	apps.Post("/:id/follow-up", h.Applications.MarkFollowedUp)

	pr := v1.Group("/profile", authMW, limit)
	pr.Get("/", h.Profile.Get)
	pr.Patch("/", h.Profile.Update)
	pr.Post("/resume", h.Profile.UploadResume)
	pr.Get("/resume", h.Profile.ResumeLink)

	ch := v1.Group("/chat", authMW, limit)
	ch.Post("/", h.Chat.Send)
	ch.Get("/suggestions", h.Chat.Suggestions)

	pp := v1.Group("/practice", authMW, limit)
	pp.Post("/", h.Practice.Start)
	pp.Get("/", h.Practice.List)
	pp.Get("/:id", h.Practice.Get)
	pp.Post("/:id/answers", h.Practice.Answer)
	pp.Delete("/:id", h.Practice.Delete)
}
