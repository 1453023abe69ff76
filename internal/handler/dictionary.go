package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wataru0019/enconapp/internal/middleware"
	"github.com/wataru0019/enconapp/internal/service"
)

// DictionaryHandler handles dictionary lookup endpoints
type DictionaryHandler struct {
	translationService *service.TranslationService
	logger             *zap.Logger
}

// NewDictionaryHandler creates a new dictionary handler
func NewDictionaryHandler(translationService *service.TranslationService, logger *zap.Logger) *DictionaryHandler {
	return &DictionaryHandler{
		translationService: translationService,
		logger:             logger,
	}
}

// Lookup handles POST /api/dictionary
func (h *DictionaryHandler) Lookup(c *fiber.Ctx) error {
	if _, err := RequireUserID(c); err != nil {
		return err
	}

	var input struct {
		Word string `json:"word"`
	}
	if err := c.BodyParser(&input); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if strings.TrimSpace(input.Word) == "" {
		return errorResponse(c, fiber.StatusBadRequest, "word is required")
	}

	start := time.Now()
	entry, err := h.translationService.LookupWord(c.Context(), input.Word)
	if err != nil {
		return serviceError(c, err, "Dictionary lookup failed")
	}

	middleware.ObserveModelRequest("dictionary", time.Since(start))

	return c.JSON(fiber.Map{
		"word":  input.Word,
		"entry": entry,
	})
}
