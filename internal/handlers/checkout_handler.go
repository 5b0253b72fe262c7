package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	checkout *services.CheckoutService
}

func NewCheckoutHandler(checkout *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

func checkoutError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Please select a product first.",
		})
	}
	slog.Error("checkout request failed", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Failed to record payment",
	})
}

// Descriptor returns what the hosted checkout widget needs for :productID.
func (h *CheckoutHandler) Descriptor(c *fiber.Ctx) error {
	d, err := h.checkout.Descriptor(c.UserContext(), c.Params("productID"))
	if err != nil {
		return checkoutError(c, err)
	}
	return c.JSON(d)
}

// Success records the widget's success callback. The payment id is taken
// on trust.
func (h *CheckoutHandler) Success(c *fiber.Ctx) error {
	var req dto.CheckoutSuccessRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	slug, _ := session.FromRequest(c).Slug()

	o, err := h.checkout.Success(c.UserContext(), slug, &req)
	if err != nil {
		return checkoutError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CheckoutResultResponse{
		OrderID: o.ID.String(),
		Status:  o.Status,
		Message: "Payment Successful! ID: " + o.PaymentID,
		Next:    services.CheckoutSuccessTo,
	})
}

func (h *CheckoutHandler) Failure(c *fiber.Ctx) error {
	var req dto.CheckoutFailureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	slug, _ := session.FromRequest(c).Slug()

	o, err := h.checkout.Failure(c.UserContext(), slug, &req)
	if err != nil {
		return checkoutError(c, err)
	}
	msg := "Payment failed"
	if req.Reason != "" {
		msg += ": " + req.Reason
	}
	return c.JSON(dto.CheckoutResultResponse{
		OrderID: o.ID.String(),
		Status:  o.Status,
		Message: msg,
	})
}
