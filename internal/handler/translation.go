package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wataru0019/enconapp/internal/middleware"
	"github.com/wataru0019/enconapp/internal/service"
)

// TranslationHandler handles translation endpoints
type TranslationHandler struct {
	translationService *service.TranslationService
	logger             *zap.Logger
}

// NewTranslationHandler creates a new translation handler
func NewTranslationHandler(translationService *service.TranslationService, logger *zap.Logger) *TranslationHandler {
	return &TranslationHandler{
		translationService: translationService,
		logger:             logger,
	}
}

// Translate handles POST /api/translate
func (h *TranslationHandler) Translate(c *fiber.Ctx) error {
	userID, err := RequireUserID(c)
	if err != nil {
		return err
	}

	var input struct {
		JapaneseText string `json:"japaneseText"`
	}
	if err := c.BodyParser(&input); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	start := time.Now()
	result, err := h.translationService.Translate(c.Context(), userID, input.JapaneseText)
	if err != nil {
		return serviceError(c, err, "Translation failed")
	}

	middleware.ObserveModelRequest("translate", time.Since(start))
	middleware.RecordTranslation()

	return c.JSON(result)
}

// History handles GET /api/translation-history. With ?q= it searches the
// history, otherwise it pages through it newest first.
func (h *TranslationHandler) History(c *fiber.Ctx) error {
	userID, err := RequireUserID(c)
	if err != nil {
		return err
	}

	if q := c.Query("q"); q != "" {
		entries, err := h.translationService.SearchHistory(c.Context(), userID, q)
		if err != nil {
			return serviceError(c, err, "Failed to search translation history")
		}
		return c.JSON(fiber.Map{"entries": entries})
	}

	p := ParsePagination(c, 200)
	entries, err := h.translationService.History(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return serviceError(c, err, "Failed to load translation history")
	}

	return c.JSON(fiber.Map{"entries": entries})
}

// DeleteEntry handles DELETE /api/translation-history/:id
func (h *TranslationHandler) DeleteEntry(c *fiber.Ctx) error {
	userID, err := RequireUserID(c)
	if err != nil {
		return err
	}

	entryID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.translationService.DeleteEntry(c.Context(), userID, entryID); err != nil {
		return serviceError(c, err, "Failed to delete translation entry")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
