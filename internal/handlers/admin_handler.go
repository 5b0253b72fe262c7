package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/store"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	admin    *services.AdminService
	checkout *services.CheckoutService
}

func NewAdminHandler(admin *services.AdminService, checkout *services.CheckoutService) *AdminHandler {
	return &AdminHandler{admin: admin, checkout: checkout}
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.admin.Stats(c.UserContext())
	if err != nil {
		slog.Error("admin stats failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load stats",
		})
	}
	return c.JSON(stats)
}

func (h *AdminHandler) ListProfiles(c *fiber.Ctx) error {
	profiles, err := h.admin.SearchProfiles(c.UserContext(), c.Query("q"))
	if err != nil {
		slog.Error("admin profile list failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch profiles",
		})
	}
	return c.JSON(dto.ProfileListResponse{Profiles: profiles, Total: len(profiles)})
}

func (h *AdminHandler) DeleteProfile(c *fiber.Ctx) error {
	if err := h.admin.DeleteProfile(c.UserContext(), c.Params("slug")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Profile not found",
			})
		}
		slog.Error("admin profile delete failed", "slug", c.Params("slug"), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete profile",
		})
	}
	return c.JSON(fiber.Map{"error": false, "message": "Profile deleted successfully"})
}

// ListOrders returns every recorded order, optionally for one slug.
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.checkout.Orders(c.UserContext(), c.Query("slug"))
	if err != nil {
		slog.Error("admin order list failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch orders",
		})
	}
	return c.JSON(fiber.Map{"orders": orders, "total": len(orders)})
}
