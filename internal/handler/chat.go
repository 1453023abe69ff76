package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wataru0019/enconapp/internal/domain"
	"github.com/wataru0019/enconapp/internal/middleware"
	"github.com/wataru0019/enconapp/internal/service"
)

// ChatHandler handles conversation endpoints
type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// CreateSession handles POST /api/chat/sessions
func (h *ChatHandler) CreateSession(c *fiber.Ctx) error {
	userID, err := RequireUserID(c)
	if err != nil {
		return err
	}

	var input struct {
		Level domain.Level `json:"level"`
		Topic *string      `json:"topic"`
	}
	if err := c.BodyParser(&input); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	session, err := h.chatService.StartSession(c.Context(), userID, input.Level, input.Topic)
	if err != nil {
		return serviceError(c, err, "Failed to create chat session")
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

// ListSessions handles GET /api/chat/sessions
func (h *ChatHandler) ListSessions(c *fiber.Ctx) error {
	userID, err := RequireUserID(c)
	if err != nil {
		return err
	}

	p := ParsePagination(c, 100)
	sessions, err := h.chatService.ListSessions(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return serviceError(c, err, "Failed to list chat sessions")
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

// ListRecentSessions handles GET /api/chat/sessions/recent
func (h *ChatHandler) ListRecentSessions(c *fiber.Ctx) error {
	userID, err := RequireUserID(c)
	if err != nil {
		return err
	}

	limit := parseQueryInt(c, "limit", 10)
	sessions, err := h.chatService.ListRecentSessions(c.Context(), userID, limit)
	if err != nil {
		return serviceError(c, err, "Failed to list recent chat sessions")
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

// GetSession handles GET /api/chat/sessions/:id
func (h *ChatHandler) GetSession(c *fiber.Ctx) error {
	userID, err := RequireUserID(c)
	if err != nil {
		return err
	}

	sessionID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	session, err := h.chatService.GetSession(c.Context(), userID, sessionID)
	if err != nil {
		return serviceError(c, err, "Failed to get chat session")
	}

	return c.JSON(session)
}

// DeleteSession handles DELETE /api/chat/sessions/:id
func (h *ChatHandler) DeleteSession(c *fiber.Ctx) error {
	userID, err := RequireUserID(c)
	if err != nil {
		return err
	}

	sessionID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.chatService.DeleteSession(c.Context(), userID, sessionID); err != nil {
		return serviceError(c, err, "Failed to delete chat session")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SendMessage handles POST /api/chat
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := RequireUserID(c)
	if err != nil {
		return err
	}

	var input struct {
		SessionID int64  `json:"sessionId"`
		Message   string `json:"message"`
	}
	if err := c.BodyParser(&input); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if input.SessionID <= 0 {
		return errorResponse(c, fiber.StatusBadRequest, "sessionId is required")
	}

	start := time.Now()
	reply, err := h.chatService.SendMessage(c.Context(), userID, input.SessionID, input.Message)
	if err != nil {
		return serviceError(c, err, "Failed to send message")
	}

	middleware.ObserveModelRequest("chat", time.Since(start))
	middleware.RecordChatTurn(string(reply.Session.Level))

	return c.JSON(reply)
}
