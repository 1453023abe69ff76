package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes registers all HTTP routes
func registerRoutes(app *fiber.App, deps *Dependencies) {
	// Health and operational routes (no auth required)
	app.Get("/health", deps.HealthHandler.Health)
	app.Get("/livez", deps.HealthHandler.Livez)
	app.Get("/readyz", deps.HealthHandler.Readyz)
	app.Get("/version", deps.HealthHandler.Version)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Auth routes
	api.Post("/auth/register", deps.AuthHandler.Register)
	api.Post("/auth/login", deps.AuthHandler.Login)
	api.Get("/auth/verify", deps.AuthMiddleware.RequireJWT(), deps.AuthHandler.Verify)

	// Everything below requires a valid token. Rate limiting keys on the
	// authenticated user, so it runs after the JWT check.
	protected := api.Group("", deps.AuthMiddleware.RequireJWT())
	if deps.RateLimitMiddleware != nil {
		protected.Use(deps.RateLimitMiddleware.Handler())
	}

	// Conversation practice
	protected.Post("/chat/sessions", deps.ChatHandler.CreateSession)
	protected.Get("/chat/sessions", deps.ChatHandler.ListSessions)
	protected.Get("/chat/sessions/recent", deps.ChatHandler.ListRecentSessions)
	protected.Get("/chat/sessions/:id", deps.ChatHandler.GetSession)
	protected.Delete("/chat/sessions/:id", deps.ChatHandler.DeleteSession)
	protected.Post("/chat", deps.ChatHandler.SendMessage)

	// Vocabulary list
	protected.Get("/vocabulary", deps.VocabularyHandler.List)
	protected.Post("/vocabulary", deps.VocabularyHandler.Create)
	protected.Get("/vocabulary/categories", deps.VocabularyHandler.Categories)
	protected.Get("/vocabulary/search", deps.VocabularyHandler.Search)
	protected.Get("/vocabulary/:id", deps.VocabularyHandler.Get)
	protected.Put("/vocabulary/:id", deps.VocabularyHandler.Update)
	protected.Delete("/vocabulary/:id", deps.VocabularyHandler.Delete)

	// Translation with feedback
	protected.Post("/translate", deps.TranslationHandler.Translate)
	protected.Get("/translation-history", deps.TranslationHandler.History)
	protected.Delete("/translation-history/:id", deps.TranslationHandler.DeleteEntry)

	// Dictionary lookup
	protected.Post("/dictionary", deps.DictionaryHandler.Lookup)
}
