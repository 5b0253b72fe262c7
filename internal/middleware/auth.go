package middleware

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func jwtConfig(cfg *config.Config) jwtware.Config {
	return jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	}
}

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtConfig(cfg))
}

// OptionalAuth verifies a bearer token when one is sent and lets anonymous
// requests through. A present but invalid token is still rejected.
func OptionalAuth(cfg *config.Config) fiber.Handler {
	jc := jwtConfig(cfg)
	jc.Filter = func(c *fiber.Ctx) bool {
		return c.Get(fiber.HeaderAuthorization) == ""
	}
	return jwtware.New(jc)
}

func claims(c *fiber.Ctx) (jwt.MapClaims, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, false
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	return mc, ok
}

// IsAuthenticated reports whether a verified token is attached.
func IsAuthenticated(c *fiber.Ctx) bool {
	_, ok := claims(c)
	return ok
}

// GetUserID returns the identity provider's subject claim.
func GetUserID(c *fiber.Ctx) (string, error) {
	mc, ok := claims(c)
	if !ok {
		return "", errors.New("invalid token in context")
	}
	sub, ok := mc["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing sub claim")
	}
	return sub, nil
}
