package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func catalogError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrProductNotFound), errors.Is(err, services.ErrAdNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidPrice),
		errors.Is(err, services.ErrAdURLsRequired):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	slog.Error("catalog request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Failed to update catalog",
	})
}

// ListProducts is public; it never fails and falls back to defaults.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	products := h.catalog.Products(c.UserContext())
	best := services.BestProduct(products)
	resp := fiber.Map{"products": products}
	if best != nil {
		resp["selected"] = best.ID
	}
	return c.JSON(resp)
}

func (h *CatalogHandler) PromotedAd(c *fiber.Ctx) error {
	ad, err := h.catalog.PromotedAd(c.UserContext())
	if err != nil {
		if !errors.Is(err, services.ErrNoActiveAds) {
			slog.Warn("promoted ad lookup failed", "error", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(ad)
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	p, err := h.catalog.CreateProduct(c.UserContext(), &req)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	p, err := h.catalog.UpdateProduct(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(p)
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return catalogError(c, err)
	}
	return c.JSON(fiber.Map{"error": false, "message": "Product deleted successfully"})
}

func (h *CatalogHandler) ListAds(c *fiber.Ctx) error {
	ads, err := h.catalog.Ads(c.UserContext())
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(fiber.Map{"ads": ads})
}

func (h *CatalogHandler) CreateAd(c *fiber.Ctx) error {
	var req dto.AdRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	ad, err := h.catalog.CreateAd(c.UserContext(), &req)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ad)
}

func (h *CatalogHandler) UpdateAd(c *fiber.Ctx) error {
	var req dto.AdRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	ad, err := h.catalog.UpdateAd(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(ad)
}

func (h *CatalogHandler) DeleteAd(c *fiber.Ctx) error {
	if err := h.catalog.DeleteAd(c.UserContext(), c.Params("id")); err != nil {
		return catalogError(c, err)
	}
	return c.JSON(fiber.Map{"error": false, "message": "Ad deleted successfully"})
}
