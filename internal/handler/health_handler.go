package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/escolalab/escolar-api/internal/utils"
)

// HealthHandler exposes the liveness endpoint.
type HealthHandler struct {
	appName string
	env     string
}

// NewHealthHandler constructs a health handler.
func NewHealthHandler(appName, env string) *HealthHandler {
	return &HealthHandler{appName: appName, env: env}
}

// Register wires the health route.
func (h *HealthHandler) Register(router fiber.Router) {
	router.Get("/health", h.health)
}

func (h *HealthHandler) health(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "service healthy", fiber.Map{
		"app": h.appName,
		"env": h.env,
	})
}
