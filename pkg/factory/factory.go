// Package factory wires adapters into use cases.
package factory

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexphase/nexcareer/pkg/ai"
	"github.com/nexphase/nexcareer/pkg/ai/llmservice"
	"github.com/nexphase/nexcareer/pkg/application"
	"github.com/nexphase/nexcareer/pkg/auth"
	"github.com/nexphase/nexcareer/pkg/chat"
	"github.com/nexphase/nexcareer/pkg/config"
	"github.com/nexphase/nexcareer/pkg/filestore"
	"github.com/nexphase/nexcareer/pkg/filestore/local"
	"github.com/nexphase/nexcareer/pkg/kv"
	"github.com/nexphase/nexcareer/pkg/llm/openrouter"
	"github.com/nexphase/nexcareer/pkg/practice"
	"github.com/nexphase/nexcareer/pkg/profile"
	"github.com/nexphase/nexcareer/pkg/repository/postgres"
	"github.com/nexphase/nexcareer/pkg/resume"
	"github.com/nexphase/nexcareer/pkg/security/jwt"
)

// Ports holds one implementation of every port the use cases depend on.
type Ports struct {
	Applications application.Repository
	Profiles     profile.Repository
	Sessions     practice.Repository
	Users        auth.UserRepository
	AI           ai.Service
	Storage      filestore.Service
	Parser       resume.Parser
	Tokens       auth.TokenIssuer
	Revocations  kv.Store
	Notifier     auth.ResetNotifier
}

// UseCases is the bundle handed to transports.
type UseCases struct {
	Applications application.UseCase
	Profiles     profile.UseCase
	Practice     practice.UseCase
	Chat         chat.UseCase
	Auth         auth.Service
}

func NewUseCases(p Ports) UseCases {
	return UseCases{
		Applications: application.NewService(p.Applications),
		Profiles:     profile.NewService(p.Profiles, p.Parser, p.Storage, p.AI),
		Practice:     practice.NewService(p.Sessions, p.Applications, p.Profiles, p.AI),
		Chat:         chat.NewService(p.Profiles, p.Applications, p.AI),
		Auth:         auth.NewService(p.Users, p.Tokens, p.Revocations, p.Notifier),
	}
}

// Production are the concrete adapters built from configuration. Files and
// Signer are exposed for the download endpoint.
type Production struct {
	Ports
	Files  *local.Store
	Signer *jwt.Generator
}

// NewProduction builds the PostgreSQL, OpenRouter, disk storage and JWT
// adapters. store backs token revocation.
func NewProduction(cfg config.Config, pool *pgxpool.Pool, store kv.Store) Production {
	signer := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL(), cfg.ResetTTL())
	files := local.New(cfg.StorageDir, cfg.StoragePublicURL, signer)
	llmCfg := cfg.OpenRouter
	model := openrouter.New(llmCfg.APIKey, llmCfg.BaseURL, llmCfg.Model, llmCfg.AppTitle, llmCfg.Referer)

	return Production{
		Ports: Ports{
			Applications: postgres.NewApplicationRepository(pool),
			Profiles:     postgres.NewProfileRepository(pool),
			Sessions:     postgres.NewPracticeRepository(pool),
			Users:        postgres.NewUserRepository(pool),
			AI:           llmservice.New(model),
			Storage:      files,
			Parser:       resume.NewParser(),
			Tokens:       signer,
			Revocations:  store,
			Notifier:     auth.LogNotifier{LinkBase: cfg.PasswordResetLink},
		},
		Files:  files,
		Signer: signer,
	}
}
