package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/store"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	backend store.Backend
}

func NewHealthHandler(backend store.Backend) *HealthHandler {
	return &HealthHandler{backend: backend}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
	defer cancel()

	storeStatus := "ok"
	if err := h.backend.Ping(ctx); err != nil {
		storeStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Store:     storeStatus,
		Backend:   h.backend.Name(),
	})
}
