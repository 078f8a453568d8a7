package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/corvidchat/corvid/internal/pkg/env"
	"github.com/gofiber/fiber/v2"
)

// RequireRemoteManagementAuth authenticates billing requests coming from
// self-hosted servers. Those requests carry a shared bearer token instead
// of a web session; there is no local user behind them.
func RequireRemoteManagementAuth(c *fiber.Ctx) error {
	token := extractBearerToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing management token"})
	}

	expected := env.GetEnv("REMOTE_MANAGEMENT_TOKEN", "")
	if expected == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "unavailable", "message": "Remote management is not configured"})
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid management token"})
	}
	return c.Next()
}

func extractBearerToken(c *fiber.Ctx) string {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
