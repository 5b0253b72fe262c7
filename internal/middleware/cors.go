package middleware

import (
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func CORS(cfg *config.Config) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Authorization, Accept, X-Admin-Token, " + ActiveSlugHeader,
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, OPTIONS",
		// The session cookie only crosses origins when they are listed.
		AllowCredentials: cfg.CORSOrigins != "*",
	})
}
