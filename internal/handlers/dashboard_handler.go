package handlers

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	d, err := h.dashboard.Load(c.UserContext(), session.FromRequest(c))
	if err != nil {
		slog.Error("dashboard load failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load dashboard",
		})
	}
	return c.JSON(d)
}
