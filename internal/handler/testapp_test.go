package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wataru0019/enconapp/internal/config"
	"github.com/wataru0019/enconapp/internal/llm"
	"github.com/wataru0019/enconapp/internal/middleware"
	"github.com/wataru0019/enconapp/internal/pkg/database"
	"github.com/wataru0019/enconapp/internal/repository/sqlite"
	"github.com/wataru0019/enconapp/internal/service"
)

// stubCompletion is a canned language model for handler tests.
type stubCompletion struct {
	reply string
	err   error
}

func (s *stubCompletion) Complete(_ context.Context, _ string, _ []llm.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

// newTestApp wires the full API against a temp-file sqlite database, with
// model calls answered by stub. Routes mirror the server's route table.
func newTestApp(t *testing.T, stub *stubCompletion) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:      "handler-test-secret",
			ExpiryHours: 1,
			Issuer:      "enconapp-test",
		},
		Chat:        config.ChatConfig{HistoryLimit: 50},
		Translation: config.TranslationConfig{RetentionCount: 100},
	}

	db, err := database.NewSQLite(config.SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	userRepo := sqlite.NewUserRepository(db)
	sessionRepo := sqlite.NewChatSessionRepository(db)
	messageRepo := sqlite.NewMessageRepository(db)
	vocabRepo := sqlite.NewVocabularyRepository(db)
	translationRepo := sqlite.NewTranslationRepository(db)

	authService := service.NewAuthService(cfg, userRepo)
	chatService := service.NewChatService(cfg, sessionRepo, messageRepo, stub)
	vocabService := service.NewVocabularyService(vocabRepo)
	translationService := service.NewTranslationService(cfg, translationRepo, stub)

	log := zap.NewNop()
	authHandler := NewAuthHandler(authService, log)
	chatHandler := NewChatHandler(chatService, log)
	vocabHandler := NewVocabularyHandler(vocabService, log)
	translationHandler := NewTranslationHandler(translationService, log)
	dictionaryHandler := NewDictionaryHandler(translationService, log)
	healthHandler := NewHealthHandler(db, "sqlite", nil, "test")

	authMW := middleware.NewAuthMiddleware(authService)

	app := fiber.New()

	app.Get("/health", healthHandler.Health)
	app.Get("/livez", healthHandler.Livez)
	app.Get("/readyz", healthHandler.Readyz)
	app.Get("/version", healthHandler.Version)

	api := app.Group("/api")
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/auth/verify", authMW.RequireJWT(), authHandler.Verify)

	protected := api.Group("", authMW.RequireJWT())
	protected.Post("/chat/sessions", chatHandler.CreateSession)
	protected.Get("/chat/sessions", chatHandler.ListSessions)
	protected.Get("/chat/sessions/recent", chatHandler.ListRecentSessions)
	protected.Get("/chat/sessions/:id", chatHandler.GetSession)
	protected.Delete("/chat/sessions/:id", chatHandler.DeleteSession)
	protected.Post("/chat", chatHandler.SendMessage)

	protected.Get("/vocabulary", vocabHandler.List)
	protected.Post("/vocabulary", vocabHandler.Create)
	protected.Get("/vocabulary/categories", vocabHandler.Categories)
	protected.Get("/vocabulary/search", vocabHandler.Search)
	protected.Get("/vocabulary/:id", vocabHandler.Get)
	protected.Put("/vocabulary/:id", vocabHandler.Update)
	protected.Delete("/vocabulary/:id", vocabHandler.Delete)

	protected.Post("/translate", translationHandler.Translate)
	protected.Get("/translation-history", translationHandler.History)
	protected.Delete("/translation-history/:id", translationHandler.DeleteEntry)

	protected.Post("/dictionary", dictionaryHandler.Lookup)

	return app
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeJSON reads a response body into out.
func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	_ = resp.Body.Close()
}

// registerUser creates an account and returns its token.
func registerUser(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"username": username,
		"password": "correct-horse-battery",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var result struct {
		Token string `json:"token"`
	}
	decodeJSON(t, resp, &result)
	require.NotEmpty(t, result.Token)
	return result.Token
}
