package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/wataru0019/enconapp/internal/service"
)

// ContextKey type for context keys
type ContextKey string

const (
	// ContextKeyUserID holds the authenticated user's ID
	ContextKeyUserID ContextKey = "userID"
	// ContextKeyUsername holds the authenticated user's name
	ContextKeyUsername ContextKey = "username"
)

// AuthMiddleware handles authentication
type AuthMiddleware struct {
	authService *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authService *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// RequireJWT validates JWT authentication
func (m *AuthMiddleware) RequireJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "Authorization header required",
			})
		}

		claims, err := m.authService.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "Invalid or expired token",
			})
		}

		c.Locals(string(ContextKeyUserID), claims.UserID)
		c.Locals(string(ContextKeyUsername), claims.Username)

		return c.Next()
	}
}

// extractBearerToken pulls the token out of the Authorization header
func extractBearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetUserID retrieves the authenticated user ID from context
func GetUserID(c *fiber.Ctx) (int64, bool) {
	userID, ok := c.Locals(string(ContextKeyUserID)).(int64)
	return userID, ok
}

// GetUsername retrieves the authenticated username from context
func GetUsername(c *fiber.Ctx) (string, bool) {
	username, ok := c.Locals(string(ContextKeyUsername)).(string)
	return username, ok
}
