package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wataru0019/enconapp/internal/config"
	"github.com/wataru0019/enconapp/internal/handler"
	"github.com/wataru0019/enconapp/internal/llm"
	"github.com/wataru0019/enconapp/internal/middleware"
	"github.com/wataru0019/enconapp/internal/service"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	Databases    *Databases
	Repositories *Repositories

	// Services
	AuthService        *service.AuthService
	ChatService        *service.ChatService
	VocabularyService  *service.VocabularyService
	TranslationService *service.TranslationService

	// Handlers
	HealthHandler      *handler.HealthHandler
	AuthHandler        *handler.AuthHandler
	ChatHandler        *handler.ChatHandler
	VocabularyHandler  *handler.VocabularyHandler
	TranslationHandler *handler.TranslationHandler
	DictionaryHandler  *handler.DictionaryHandler

	// Middleware
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

// initDependencies initializes all dependencies
func initDependencies(cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	ctx := context.Background()

	dbs, err := initDatabases(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	repos := initRepositories(dbs)
	completions := llm.NewClient(cfg.Anthropic)

	deps := &Dependencies{
		Config:       cfg,
		Logger:       logger,
		Databases:    dbs,
		Repositories: repos,
	}

	deps.AuthService = service.NewAuthService(cfg, repos.User)
	deps.ChatService = service.NewChatService(cfg, repos.ChatSession, repos.Message, completions)
	deps.VocabularyService = service.NewVocabularyService(repos.Vocabulary)
	deps.TranslationService = service.NewTranslationService(cfg, repos.Translation, completions)

	deps.HealthHandler = handler.NewHealthHandler(dbs.Active(), dbs.Driver, dbs.Redis, appVersion)
	deps.AuthHandler = handler.NewAuthHandler(deps.AuthService, logger)
	deps.ChatHandler = handler.NewChatHandler(deps.ChatService, logger)
	deps.VocabularyHandler = handler.NewVocabularyHandler(deps.VocabularyService, logger)
	deps.TranslationHandler = handler.NewTranslationHandler(deps.TranslationService, logger)
	deps.DictionaryHandler = handler.NewDictionaryHandler(deps.TranslationService, logger)

	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.AuthService)

	if cfg.RateLimit.Enabled && dbs.Redis != nil {
		limiterConfig := middleware.DefaultRateLimitConfig()
		limiterConfig.Max = cfg.RateLimit.Max
		limiterConfig.Window = time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		deps.RateLimitMiddleware = middleware.NewRateLimitMiddleware(dbs.Redis, limiterConfig)
	}

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() {
	if d.Databases != nil {
		d.Databases.Close()
	}
}
