package handlers

import (
	"bytes"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/emergency"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/store"
	"github.com/gofiber/fiber/v2"
)

const loadFailedMsg = "Unable to load emergency data"

type EmergencyHandler struct {
	resolver *emergency.Resolver
}

func NewEmergencyHandler(resolver *emergency.Resolver) *EmergencyHandler {
	return &EmergencyHandler{resolver: resolver}
}

func (h *EmergencyHandler) resolve(c *fiber.Ctx) (emergency.View, int, string) {
	v, err := h.resolver.Resolve(c.UserContext(), c.Params("slug"))
	switch {
	case err == nil:
		return v, fiber.StatusOK, ""
	case errors.Is(err, store.ErrNotFound):
		return v, fiber.StatusNotFound, emergency.ProfileNotFoundMsg
	default:
		return v, fiber.StatusServiceUnavailable, loadFailedMsg
	}
}

func (h *EmergencyHandler) record(c *fiber.Ctx, v emergency.View) {
	h.resolver.Record(c.UserContext(), v, emergency.ScanMeta{
		IP:        c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	})
}

// Page renders the responder view. It always answers 200 with a usable
// page; lookup problems appear as a banner over placeholder values.
func (h *EmergencyHandler) Page(c *fiber.Ctx) error {
	v, _, notice := h.resolve(c)
	h.record(c, v)

	var buf bytes.Buffer
	if err := emergency.RenderPage(&buf, v, notice); err != nil {
		slog.Error("emergency page render failed", "slug", v.Slug, "error", err)
		return fiber.ErrInternalServerError
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Set("X-Robots-Tag", "noindex")
	return c.Type("html").Send(buf.Bytes())
}

// Profile returns the responder view as JSON. The view is present on 404
// and 503 responses too.
func (h *EmergencyHandler) Profile(c *fiber.Ctx) error {
	v, status, msg := h.resolve(c)
	h.record(c, v)

	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(status).JSON(dto.EmergencyResponse{
		View:    v,
		CallURI: v.CallURI(),
		Message: msg,
	})
}

// SendLocation turns the responder's geolocation result into a messaging
// link for the emergency contact.
func (h *EmergencyHandler) SendLocation(c *fiber.Ctx) error {
	var result emergency.DeviceResult
	if err := c.BodyParser(&result); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	v, status, msg := h.resolve(c)
	if status != fiber.StatusOK {
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
	}

	link, err := emergency.SendLocation(c.UserContext(), v, result)
	if err != nil {
		code := fiber.StatusUnprocessableEntity
		switch {
		case errors.Is(err, emergency.ErrGeolocationDenied):
			code = fiber.StatusForbidden
		case errors.Is(err, emergency.ErrGeolocationUnsupported):
			code = fiber.StatusBadRequest
		}
		return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}

	slog.Info("location link issued", "slug", v.Slug, "action", "send_location")
	return c.JSON(dto.LocationResponse{URL: link})
}
