package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wataru0019/enconapp/internal/domain"
	"github.com/wataru0019/enconapp/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input domain.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	result, err := h.authService.Register(c.Context(), &input)
	if err != nil {
		return serviceError(c, err, "Registration failed")
	}

	h.logger.Info("user registered",
		zap.Int64("user_id", result.User.ID),
		zap.String("username", result.User.Username),
	)

	return c.Status(fiber.StatusCreated).JSON(result)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	result, err := h.authService.Login(c.Context(), &input)
	if err != nil {
		return serviceError(c, err, "Login failed")
	}

	return c.JSON(result)
}

// Verify handles GET /api/auth/verify. It runs behind the JWT middleware and
// returns the authenticated user, so clients can check a stored token.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	userID, err := RequireUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		return serviceError(c, err, "Failed to verify token")
	}

	return c.JSON(fiber.Map{
		"valid": true,
		"user":  user,
	})
}
