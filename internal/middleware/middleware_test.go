package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   testSecret,
		AdminEmails: "Admin@Resqr.app",
		AdminToken:  "letmein",
	}
}

func signToken(t *testing.T, secret, sub, email string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func whoami(c *fiber.Ctx) error {
	id, err := GetUserID(c)
	if err != nil {
		return c.SendString("anonymous")
	}
	return c.SendString(id)
}

func doGet(t *testing.T, app *fiber.App, headers map[string]string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestOptionalAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/", OptionalAuth(testConfig()), whoami)

	code, body := doGet(t, app, nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "anonymous", body)

	code, body = doGet(t, app, map[string]string{"Authorization": "Bearer " + signToken(t, testSecret, "user-1", "")})
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "user-1", body)

	code, _ = doGet(t, app, map[string]string{"Authorization": "Bearer " + signToken(t, "wrong", "user-1", "")})
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestJWTProtected(t *testing.T) {
	app := fiber.New()
	app.Get("/", JWTProtected(testConfig()), whoami)

	code, _ := doGet(t, app, nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, body := doGet(t, app, map[string]string{"Authorization": "Bearer " + signToken(t, testSecret, "user-2", "")})
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "user-2", body)
}

func TestAdminRequired(t *testing.T) {
	cfg := testConfig()
	app := fiber.New()
	app.Get("/", OptionalAuth(cfg), AdminRequired(cfg), whoami)

	tests := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{"anonymous", nil, fiber.StatusUnauthorized},
		{"admin token", map[string]string{"X-Admin-Token": "letmein"}, fiber.StatusOK},
		{"wrong admin token", map[string]string{"X-Admin-Token": "nope"}, fiber.StatusUnauthorized},
		{"admin email any case", map[string]string{"Authorization": "Bearer " + signToken(t, testSecret, "u", "admin@resqr.app")}, fiber.StatusOK},
		{"regular user", map[string]string{"Authorization": "Bearer " + signToken(t, testSecret, "u", "jane@example.com")}, fiber.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := doGet(t, app, tt.headers)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestActiveSlug(t *testing.T) {
	app := fiber.New()
	app.Use(ActiveSlug())
	app.Get("/", func(c *fiber.Ctx) error {
		s, _ := session.FromRequest(c).Slug()
		return c.SendString(s)
	})

	_, body := doGet(t, app, map[string]string{ActiveSlugHeader: "jane-doe"})
	assert.Equal(t, "jane-doe", body)

	_, body = doGet(t, app, map[string]string{
		ActiveSlugHeader: "jane-doe",
		"Cookie":         session.CookieName + "=john-smith",
	})
	assert.Equal(t, "john-smith", body)
}
