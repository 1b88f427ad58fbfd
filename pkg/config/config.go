package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
)

type Config struct {
	Port        string `yaml:"port"`
	DatabaseURL string `yaml:"database_url"`
	// RedisURL is optional; without it counters and revocations stay in memory.
	RedisURL string `yaml:"redis_url"`

	DBMaxConns               int `yaml:"db_max_conns"`
	DBMinConns               int `yaml:"db_min_conns"`
	DBMaxConnLifetimeMinutes int `yaml:"db_max_conn_lifetime_minutes"`
	HealthTimeoutMS          int `yaml:"health_timeout_ms"`

	JWTSecret           string `yaml:"jwt_secret"`
	JWTIssuer           string `yaml:"jwt_issuer"`
	JWTTTLMinutes       int    `yaml:"jwt_ttl_minutes"`
	ResetTTLMinutes     int    `yaml:"reset_ttl_minutes"`
	PasswordResetLink   string `yaml:"password_reset_link"`
	SignedURLTTLMinutes int    `yaml:"signed_url_ttl_minutes"`

	OpenRouter OpenRouter `yaml:"openrouter"`

	StorageDir       string `yaml:"storage_dir"`
	StoragePublicURL string `yaml:"storage_public_url"`
	MaxUploadMB      int    `yaml:"max_upload_mb"`

	RateLimitRequests      int `yaml:"rate_limit_requests"`
	RateLimitWindowSeconds int `yaml:"rate_limit_window_seconds"`
}

type OpenRouter struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
	AppTitle string `yaml:"app_title"`
	Referer  string `yaml:"referer"`
}

func defaults() Config {
	return Config{
		Port:                     "8080",
		DBMaxConns:               10,
		DBMaxConnLifetimeMinutes: 60,
		HealthTimeoutMS:          1000,
		JWTSecret:                "dev-secret-change",
		JWTIssuer:                "nexcareer",
		JWTTTLMinutes:            60,
		ResetTTLMinutes:          30,
		SignedURLTTLMinutes:      15,
		StorageDir:               "./data/files",
		StoragePublicURL:         "http://localhost:8080/api/v1/files",
		MaxUploadMB:              10,
		RateLimitRequests:        60,
		RateLimitWindowSeconds:   60,
		OpenRouter:               OpenRouter{AppTitle: "NexCareer"},
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables, optionally from a .env
// file if present.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	setEnv(&cfg.Port, "PORT")
	setEnv(&cfg.DatabaseURL, "DATABASE_URL")
	setEnv(&cfg.RedisURL, "REDIS_URL")
	setEnvInt(&cfg.DBMaxConns, "DB_MAX_CONNS")
	setEnvInt(&cfg.DBMinConns, "DB_MIN_CONNS")
	setEnvInt(&cfg.DBMaxConnLifetimeMinutes, "DB_MAX_CONN_LIFETIME_MINUTES")
	setEnvInt(&cfg.HealthTimeoutMS, "HEALTH_TIMEOUT_MS")
	setEnv(&cfg.JWTSecret, "JWT_SECRET")
	setEnv(&cfg.JWTIssuer, "JWT_ISSUER")
	setEnvInt(&cfg.JWTTTLMinutes, "JWT_TTL_MINUTES")
	setEnvInt(&cfg.ResetTTLMinutes, "RESET_TTL_MINUTES")
	setEnv(&cfg.PasswordResetLink, "PASSWORD_RESET_LINK")
	setEnvInt(&cfg.SignedURLTTLMinutes, "SIGNED_URL_TTL_MINUTES")
	setEnv(&cfg.OpenRouter.APIKey, "OPENROUTER_API_KEY")
	setEnv(&cfg.OpenRouter.BaseURL, "OPENROUTER_BASE_URL")
	setEnv(&cfg.OpenRouter.Model, "OPENROUTER_MODEL")
	setEnv(&cfg.OpenRouter.AppTitle, "OPENROUTER_APP_TITLE")
	setEnv(&cfg.OpenRouter.Referer, "OPENROUTER_REFERER")
	setEnv(&cfg.StorageDir, "STORAGE_DIR")
	setEnv(&cfg.StoragePublicURL, "STORAGE_PUBLIC_URL")
	setEnvInt(&cfg.MaxUploadMB, "MAX_UPLOAD_MB")
	setEnvInt(&cfg.RateLimitRequests, "RATE_LIMIT_REQUESTS")
	setEnvInt(&cfg.RateLimitWindowSeconds, "RATE_LIMIT_WINDOW_SECONDS")

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

func (c Config) JWTTTL() time.Duration { return time.Duration(c.JWTTTLMinutes) * time.Minute }

func (c Config) ResetTTL() time.Duration { return time.Duration(c.ResetTTLMinutes) * time.Minute }

func (c Config) SignedURLTTL() time.Duration {
	return time.Duration(c.SignedURLTTLMinutes) * time.Minute
}

func (c Config) DBMaxConnLifetime() time.Duration {
	return time.Duration(c.DBMaxConnLifetimeMinutes) * time.Minute
}

func (c Config) HealthTimeout() time.Duration {
	return time.Duration(c.HealthTimeoutMS) * time.Millisecond
}

func (c Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func setEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setEnvInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
