package session

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPointer(t *testing.T) {
	p := NewMemoryPointer("")
	_, ok := p.Slug()
	assert.False(t, ok)

	p.SetSlug("jane-doe")
	s, ok := p.Slug()
	assert.True(t, ok)
	assert.Equal(t, "jane-doe", s)

	p.Clear()
	_, ok = p.Slug()
	assert.False(t, ok)
}

func TestCookiePointer(t *testing.T) {
	app := fiber.New()
	app.Get("/read", func(c *fiber.Ctx) error {
		s, ok := FromRequest(c).Slug()
		if !ok {
			return c.SendString("none")
		}
		return c.SendString(s)
	})
	app.Post("/set", func(c *fiber.Ctx) error {
		p := FromRequest(c)
		p.SetSlug("jane-doe")
		s, _ := p.Slug()
		return c.SendString(s)
	})
	app.Delete("/clear", func(c *fiber.Ctx) error {
		FromRequest(c).Clear()
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/set", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "jane-doe", string(body))
	assert.Contains(t, resp.Header.Get("Set-Cookie"), CookieName+"=jane-doe")

	req := httptest.NewRequest("GET", "/read", nil)
	req.Header.Set("Cookie", CookieName+"=john-smith")
	resp, err = app.Test(req)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "john-smith", string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/read", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "none", string(body))

	resp, err = app.Test(httptest.NewRequest("DELETE", "/clear", nil))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Set-Cookie"), CookieName+"="))
}
