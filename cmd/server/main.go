// @title         nexcareer API
// @version       1.0
// @description   Job-application tracker with resume parsing, an AI career coach and interview practice.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Access token. Both "Bearer <JWT>" and "<JWT>" are accepted.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberredis "github.com/gofiber/storage/redis/v3"
	swagger "github.com/gofiber/swagger"

	_ "github.com/nexphase/nexcareer/docs"

	// internal imports
	"github.com/nexphase/nexcareer/api/http"
	"github.com/nexphase/nexcareer/api/http/handlers"
	"github.com/nexphase/nexcareer/api/http/middleware"
	"github.com/nexphase/nexcareer/migrations"
	"github.com/nexphase/nexcareer/pkg/config"
	"github.com/nexphase/nexcareer/pkg/factory"
	"github.com/nexphase/nexcareer/pkg/health"
	"github.com/nexphase/nexcareer/pkg/health/checkers"
	"github.com/nexphase/nexcareer/pkg/kv"
	kvredis "github.com/nexphase/nexcareer/pkg/kv/redis"
	"github.com/nexphase/nexcareer/pkg/security/jwt"
	"github.com/nexphase/nexcareer/pkg/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration from env/.env and the optional YAML file
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Connect to PostgreSQL and bring the schema up to date
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, postgres.PoolOptions{
		MaxConns:        int32(cfg.DBMaxConns),
		MinConns:        int32(cfg.DBMinConns),
		MaxConnLifetime: cfg.DBMaxConnLifetime(),
	})
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool, migrations.FS); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	checks := []health.Checker{checkers.NewPostgresChecker(pool, cfg.HealthTimeout())}

	// Redis backs rate limits and token revocation when configured; a single
	// instance can run on the in-process stores.
	var (
		store        kv.Store
		limiterStore fiber.Storage
	)
	if cfg.RedisURL != "" {
		client, err := kvredis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis connect: %v", err)
		}
		defer client.Close()
		store = kvredis.New(client, "nexcareer:")
		checks = append(checks, checkers.NewRedisChecker(client, cfg.HealthTimeout()))

		rl := fiberredis.New(fiberredis.Config{URL: cfg.RedisURL})
		defer rl.Close()
		limiterStore = rl
	} else {
		log.Printf("REDIS_URL not set, using in-memory store")
		mem := kv.NewMemory()
		go sweep(ctx, mem, time.Minute)
		store = mem
	}

	// Wire dependencies
	prod := factory.NewProduction(cfg, pool, store)
	uc := factory.NewUseCases(prod.Ports)

	h := http.Handlers{
		Auth:         handlers.NewAuthHandler(uc.Auth),
		Health:       handlers.NewHealthHandler(health.NewService(checks...)),
		Applications: handlers.NewApplicationHandler(uc.Applications),
		Profile:      handlers.NewProfileHandler(uc.Profiles, int64(cfg.MaxUploadMB)<<20, cfg.SignedURLTTL()),
		Chat:         handlers.NewChatHandler(uc.Chat),
		Practice:     handlers.NewPracticeHandler(uc.Practice),
		Files:        handlers.NewFileHandler(prod.Files),
	}

	// JWT auth middleware for protected routes
	authMW := jwt.NewAuthMiddleware(uc.Auth)
	rateLimit := middleware.NewRateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow(), limiterStore)

	app := fiber.New(fiber.Config{
		AppName:   "nexcareer",
		BodyLimit: (cfg.MaxUploadMB + 1) << 20,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	// Register routes
	http.Register(app, h, authMW, rateLimit)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	// Start server
	log.Printf("HTTP server listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func sweep(ctx context.Context, m *kv.Memory, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep()
		}
	}
}
