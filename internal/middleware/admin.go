package middleware

import (
	"crypto/subtle"
	"slices"
	"strings"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired admits the X-Admin-Token holder or a verified token whose
// email or subject is in the configured admin lists. Run it after
// OptionalAuth or JWTProtected.
func AdminRequired(cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(strings.ToLower(cfg.AdminEmails))
	adminUserIDs := parseCSV(cfg.AdminUserIDs)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			if subtle.ConstantTimeCompare([]byte(c.Get("X-Admin-Token")), []byte(cfg.AdminToken)) == 1 {
				return c.Next()
			}
		}

		mc, ok := claims(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		email, _ := mc["email"].(string)
		sub, _ := mc["sub"].(string)

		if (email != "" && slices.Contains(adminEmails, strings.ToLower(email))) ||
			(sub != "" && slices.Contains(adminUserIDs, sub)) {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
