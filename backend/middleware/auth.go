package middleware

import (
	"cookmastery/backend/config"
	"cookmastery/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware rejects requests without a valid token and stores the
// caller's id for handlers.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		utils.SetCurrentUserID(c, userID)
		return c.Next()
	}
}

// OptionalAuthMiddleware identifies the caller when it can. A missing or
// invalid token leaves the request anonymous.
func OptionalAuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID, err := utils.ExtractUserIDFromToken(c, cfg); err == nil {
			utils.SetCurrentUserID(c, userID)
		}
		return c.Next()
	}
}
