package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/wizard"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

const eventKeepAlive = 25 * time.Second

type ProfileHandler struct {
	wizards   *wizard.Service
	dashboard *services.DashboardService
	profiles  store.ProfileStore
	keepAlive time.Duration
}

func NewProfileHandler(wizards *wizard.Service, dashboard *services.DashboardService, profiles store.ProfileStore) *ProfileHandler {
	return &ProfileHandler{
		wizards:   wizards,
		dashboard: dashboard,
		profiles:  profiles,
		keepAlive: eventKeepAlive,
	}
}

func badWizardID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid wizard id",
	})
}

func wizardError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, wizard.ErrDraftNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Wizard not found or expired",
		})
	case errors.Is(err, wizard.ErrInvalidProfile):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	slog.Error("wizard request failed", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
		Error: true, Message: "Failed to save profile. Please try again.",
	})
}

func (h *ProfileHandler) StartWizard(c *fiber.Ctx) error {
	w, err := h.wizards.Start(c.UserContext())
	if err != nil {
		return wizardError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewWizardResponse(w))
}

func (h *ProfileHandler) GetWizard(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badWizardID(c)
	}
	w, err := h.wizards.Get(c.UserContext(), id)
	if err != nil {
		return wizardError(c, err)
	}
	return c.JSON(dto.NewWizardResponse(w))
}

func (h *ProfileHandler) UpdateWizard(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badWizardID(c)
	}
	var patch wizard.Patch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	w, err := h.wizards.Update(c.UserContext(), id, patch)
	if err != nil {
		return wizardError(c, err)
	}
	return c.JSON(dto.NewWizardResponse(w))
}

// NextStep advances the wizard; from Review it submits and only reports
// success once the profile is stored.
func (h *ProfileHandler) NextStep(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badWizardID(c)
	}
	out, err := h.wizards.Next(c.UserContext(), id, session.FromRequest(c), middleware.IsAuthenticated(c))
	if err != nil {
		return wizardError(c, err)
	}
	return c.JSON(dto.NewOutcomeResponse(out))
}

func (h *ProfileHandler) PrevStep(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badWizardID(c)
	}
	w, err := h.wizards.Back(c.UserContext(), id)
	if err != nil {
		return wizardError(c, err)
	}
	return c.JSON(dto.NewWizardResponse(w))
}

// UpdateProfile edits the session's own profile from the dashboard.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	var patch wizard.Patch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	p, err := h.dashboard.UpdateProfile(c.UserContext(), session.FromRequest(c), c.Params("slug"), patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoActiveProfile), errors.Is(err, services.ErrNotProfileOwner):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, store.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Profile not found",
			})
		}
		return wizardError(c, err)
	}
	return c.JSON(p)
}

// ClearSession forgets the active profile for this browser.
func (h *ProfileHandler) ClearSession(c *fiber.Ctx) error {
	session.FromRequest(c).Clear()
	return c.SendStatus(fiber.StatusNoContent)
}

// Events streams the profile at :slug as server-sent events: the current
// value first, then every change, until the client disconnects. A deleted
// or absent profile is sent as null.
func (h *ProfileHandler) Events(c *fiber.Ctx) error {
	key := c.Params("slug")
	updates := make(chan *models.Profile, 1)

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := h.profiles.Subscribe(ctx, key, func(p *models.Profile) {
		offerLatest(updates, p)
	})
	if err != nil {
		cancel()
		slog.Error("profile subscribe failed", "slug", key, "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Profile updates unavailable",
		})
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	keepAlive := h.keepAlive
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer sub.Unsubscribe()

		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()

		for {
			select {
			case p := <-updates:
				if err := writeProfileEvent(w, p); err != nil {
					return
				}
			case <-ticker.C:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
			}
			if err := w.Flush(); err != nil {
				slog.Debug("profile event stream closed", "slug", key)
				return
			}
		}
	}))
	return nil
}

// offerLatest replaces any undelivered update with p so a slow client only
// ever sees the newest state.
func offerLatest(ch chan *models.Profile, p *models.Profile) {
	for {
		select {
		case ch <- p:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func writeProfileEvent(w *bufio.Writer, p *models.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: profile\ndata: %s\n\n", data)
	return err
}
