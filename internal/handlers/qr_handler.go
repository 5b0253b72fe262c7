package handlers

import (
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/qr"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

type QRHandler struct {
	origin string
}

// NewQRHandler encodes links under origin. An empty origin falls back to
// the request's own base URL.
func NewQRHandler(origin string) *QRHandler {
	return &QRHandler{origin: strings.TrimRight(origin, "/")}
}

func (h *QRHandler) target(c *fiber.Ctx) (string, string) {
	origin := h.origin
	if origin == "" {
		origin = c.BaseURL()
	}
	slug, _ := session.FromRequest(c).Slug()
	return qr.TargetURL(origin, slug), slug
}

func (h *QRHandler) URL(c *fiber.Ctx) error {
	url, slug := h.target(c)
	return c.JSON(dto.QRURLResponse{URL: url, Slug: slug, Demo: slug == ""})
}

func (h *QRHandler) render(c *fiber.Ctx) ([]byte, error) {
	url, _ := h.target(c)
	png, err := qr.Render(url, c.QueryInt("size", qr.DefaultSize))
	if err != nil {
		slog.Error("qr render failed", "url", url, "error", err)
		return nil, fiber.ErrInternalServerError
	}
	return png, nil
}

// Image serves the tag PNG for the session's active profile.
func (h *QRHandler) Image(c *fiber.Ctx) error {
	png, err := h.render(c)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Type("png").Send(png)
}

func (h *QRHandler) Download(c *fiber.Ctx) error {
	png, err := h.render(c)
	if err != nil {
		return err
	}
	c.Attachment(qr.DownloadName)
	return c.Type("png").Send(png)
}
