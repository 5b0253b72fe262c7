package middleware

import (
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

// ActiveSlugHeader lets clients that keep the slug in local storage send it
// instead of the cookie.
const ActiveSlugHeader = "X-Active-Slug"

// ActiveSlug seeds the session pointer from ActiveSlugHeader when the
// request carries no session cookie. The cookie wins when both are present.
func ActiveSlug() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Cookies(session.CookieName) == "" {
			if slug := c.Get(ActiveSlugHeader); slug != "" {
				c.Locals(session.CookieName, slug)
			}
		}
		return c.Next()
	}
}
