package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seu-repo/evplan/internal/service/health"
)

type HealthHandler struct {
	health *health.Service
}

func NewHealthHandler(svc *health.Service) *HealthHandler {
	return &HealthHandler{health: svc}
}

// Live reports process liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(h.health.Live())
}

// Ready probes every registered dependency and returns 503 when any is down.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	resp := h.health.Ready(c.Context())
	if resp.Status != health.StatusHealthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
