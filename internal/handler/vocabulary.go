package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wataru0019/enconapp/internal/domain"
	"github.com/wataru0019/enconapp/internal/service"
)

// VocabularyHandler handles vocabulary list endpoints
type VocabularyHandler struct {
	vocabService *service.VocabularyService
	logger       *zap.Logger
}

// NewVocabularyHandler creates a new vocabulary handler
func NewVocabularyHandler(vocabService *service.VocabularyService, logger *zap.Logger) *VocabularyHandler {
	return &VocabularyHandler{
		vocabService: vocabService,
		logger:       logger,
	}
}

// List handles GET /api/vocabulary. With ?category= it filters by category,
// otherwise it pages through the whole list.
func (h *VocabularyHandler) List(c *fiber.Ctx) error {
	userID, err := RequireUserID(c)
	if err != nil {
		return err
	}

	p := ParsePagination(c, 200)
	words, err := h.vocabService.ListWords(c.Context(), userID, c.Query("category"), p.Limit, p.Offset)
	if err != nil {
		return serviceError(c, err, "Failed to list vocabulary")
	}

	count, err := h.vocabService.CountWords(c.Context(), userID)
	if err != nil {
		return serviceError(c, err, "Failed to count vocabulary")
	}

	return c.JSON(fiber.Map{
		"words": words,
		"total": count,
	})
}

// Create handles POST /api/vocabulary
func (h *VocabularyHandler) Create(c *fiber.Ctx) error {
	userID, err := RequireUserID(c)
	if err != nil {
		return err
	}

	var input domain.CreateVocabulary
	if err := c.BodyParser(&input); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	input.UserID = userID

	word, err := h.vocabService.AddWord(c.Context(), input)
	if err != nil {
		return serviceError(c, err, "Failed to add word")
	}

	return c.Status(fiber.StatusCreated).JSON(word)
}

// Get handles GET /api/vocabulary/:id
func (h *VocabularyHandler) Get(c *fiber.Ctx) error {
	userID, err := RequireUserID(c)
	if err != nil {
		return err
	}

	wordID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	word, err := h.vocabService.GetWord(c.Context(), userID, wordID)
	if err != nil {
		return serviceError(c, err, "Failed to get word")
	}

	return c.JSON(word)
}

// Update handles PUT /api/vocabulary/:id
func (h *VocabularyHandler) Update(c *fiber.Ctx) error {
	userID, err := RequireUserID(c)
	if err != nil {
		return err
	}

	wordID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var upd domain.VocabularyUpdate
	if err := c.BodyParser(&upd); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	word, err := h.vocabService.UpdateWord(c.Context(), userID, wordID, upd)
	if err != nil {
		return serviceError(c, err, "Failed to update word")
	}

	return c.JSON(word)
}

// Delete handles DELETE /api/vocabulary/:id
func (h *VocabularyHandler) Delete(c *fiber.Ctx) error {
	userID, err := RequireUserID(c)
	if err != nil {
		return err
	}

	wordID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.vocabService.DeleteWord(c.Context(), userID, wordID); err != nil {
		return serviceError(c, err, "Failed to delete word")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Categories handles GET /api/vocabulary/categories
func (h *VocabularyHandler) Categories(c *fiber.Ctx) error {
	userID, err := RequireUserID(c)
	if err != nil {
		return err
	}

	categories, err := h.vocabService.ListCategories(c.Context(), userID)
	if err != nil {
		return serviceError(c, err, "Failed to list categories")
	}

	return c.JSON(fiber.Map{"categories": categories})
}

// Search handles GET /api/vocabulary/search?q=
func (h *VocabularyHandler) Search(c *fiber.Ctx) error {
	userID, err := RequireUserID(c)
	if err != nil {
		return err
	}

	words, err := h.vocabService.SearchWords(c.Context(), userID, c.Query("q"))
	if err != nil {
		return serviceError(c, err, "Failed to search vocabulary")
	}

	return c.JSON(fiber.Map{"words": words})
}
