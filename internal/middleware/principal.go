package middleware

import (
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/config"
	"github.com/gofiber/fiber/v2"
)

// Principal attaches the acting user to the request context. Until real
// authentication lands this is a single hardcoded identity taken from
// config; swapping in a token-based identity provider only touches this
// middleware.
func Principal(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", cfg.DefaultUserID)
		return c.Next()
	}
}

// PrincipalFrom reads the acting user set by Principal
func PrincipalFrom(c *fiber.Ctx) string {
	if id, ok := c.Locals("userID").(string); ok {
		return id
	}
	return ""
}
