package handler

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/wataru0019/enconapp/internal/pkg/errors"
)

func createSession(t *testing.T, app *fiber.App, token, level string) int64 {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/chat/sessions", token, fiber.Map{
		"level": level,
		"topic": "travel",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var session struct {
		ID int64 `json:"id"`
	}
	decodeJSON(t, resp, &session)
	require.NotZero(t, session.ID)
	return session.ID
}

func TestChat_CreateSession(t *testing.T) {
	app := newTestApp(t, &stubCompletion{})
	token := registerUser(t, app, "alice")

	resp := doJSON(t, app, "POST", "/api/chat/sessions", token, fiber.Map{
		"level": "intermediate",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var session struct {
		ID    int64  `json:"id"`
		Level string `json:"level"`
	}
	decodeJSON(t, resp, &session)
	assert.Equal(t, "intermediate", session.Level)
}

func TestChat_CreateSessionRejectsUnknownLevel(t *testing.T) {
	app := newTestApp(t, &stubCompletion{})
	token := registerUser(t, app, "alice")

	resp := doJSON(t, app, "POST", "/api/chat/sessions", token, fiber.Map{
		"level": "expert",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestChat_SendMessagePersistsBothTurns(t *testing.T) {
	app := newTestApp(t, &stubCompletion{reply: "That sounds fun! Where did you go?"})
	token := registerUser(t, app, "alice")
	sessionID := createSession(t, app, token, "beginner")

	resp := doJSON(t, app, "POST", "/api/chat", token, fiber.Map{
		"sessionId": sessionID,
		"message":   "I went to the beach yesterday.",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reply struct {
		UserMessage struct {
			Message string `json:"message"`
		} `json:"userMessage"`
		Reply struct {
			Sender  string `json:"sender"`
			Message string `json:"message"`
		} `json:"reply"`
	}
	decodeJSON(t, resp, &reply)
	assert.Equal(t, "I went to the beach yesterday.", reply.UserMessage.Message)
	assert.Equal(t, "assistant", reply.Reply.Sender)
	assert.Equal(t, "That sounds fun! Where did you go?", reply.Reply.Message)

	// Both turns come back when the session is fetched.
	resp = doJSON(t, app, "GET", fmt.Sprintf("/api/chat/sessions/%d", sessionID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var full struct {
		Messages []struct {
			Sender string `json:"sender"`
		} `json:"messages"`
	}
	decodeJSON(t, resp, &full)
	require.Len(t, full.Messages, 2)
	assert.Equal(t, "user", full.Messages[0].Sender)
	assert.Equal(t, "assistant", full.Messages[1].Sender)
}

func TestChat_SendMessageModelFailureStoresNothing(t *testing.T) {
	app := newTestApp(t, &stubCompletion{err: apperrors.Unavailable("model overloaded")})
	token := registerUser(t, app, "alice")
	sessionID := createSession(t, app, token, "beginner")

	resp := doJSON(t, app, "POST", "/api/chat", token, fiber.Map{
		"sessionId": sessionID,
		"message":   "Hello!",
	})
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	resp = doJSON(t, app, "GET", fmt.Sprintf("/api/chat/sessions/%d", sessionID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var full struct {
		Messages []struct{} `json:"messages"`
	}
	decodeJSON(t, resp, &full)
	assert.Empty(t, full.Messages)
}

func TestChat_SessionsAreScopedToOwner(t *testing.T) {
	app := newTestApp(t, &stubCompletion{})
	aliceToken := registerUser(t, app, "alice")
	bobToken := registerUser(t, app, "bob")
	sessionID := createSession(t, app, aliceToken, "beginner")

	resp := doJSON(t, app, "GET", fmt.Sprintf("/api/chat/sessions/%d", sessionID), bobToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, "DELETE", fmt.Sprintf("/api/chat/sessions/%d", sessionID), bobToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestChat_ListSessions(t *testing.T) {
	app := newTestApp(t, &stubCompletion{})
	token := registerUser(t, app, "alice")
	createSession(t, app, token, "beginner")
	createSession(t, app, token, "advanced")

	resp := doJSON(t, app, "GET", "/api/chat/sessions", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		Sessions []struct {
			Level string `json:"level"`
		} `json:"sessions"`
	}
	decodeJSON(t, resp, &result)
	require.Len(t, result.Sessions, 2)
	assert.Equal(t, "advanced", result.Sessions[0].Level, "newest session first")
}

func TestChat_DeleteSession(t *testing.T) {
	app := newTestApp(t, &stubCompletion{})
	token := registerUser(t, app, "alice")
	sessionID := createSession(t, app, token, "beginner")

	resp := doJSON(t, app, "DELETE", fmt.Sprintf("/api/chat/sessions/%d", sessionID), token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, "GET", fmt.Sprintf("/api/chat/sessions/%d", sessionID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestChat_InvalidSessionIDParam(t *testing.T) {
	app := newTestApp(t, &stubCompletion{})
	token := registerUser(t, app, "alice")

	resp := doJSON(t, app, "GET", "/api/chat/sessions/abc", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
