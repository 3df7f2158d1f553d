package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/recyclehub/internal/config"
	"github.com/example/recyclehub/internal/utils"
)

const (
	accountContextKey = "currentAccountID"
	roleContextKey    = "currentAccountRole"
)

// AuthMiddleware validates JWT tokens and loads the authenticated account ID
// and role into context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		accountID, role, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(accountContextKey, accountID)
		c.Locals(roleContextKey, role)
		return c.Next()
	}
}

// GetCurrentAccount extracts the authenticated account ID and role from context.
func GetCurrentAccount(c *fiber.Ctx) (uuid.UUID, string, bool) {
	id, ok := c.Locals(accountContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}

	role, ok := c.Locals(roleContextKey).(string)
	if !ok {
		return uuid.Nil, "", false
	}

	return id, role, true
}
