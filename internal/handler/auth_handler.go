package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/escolalab/escolar-api/internal/dto"
	"github.com/escolalab/escolar-api/internal/service"
	"github.com/escolalab/escolar-api/internal/utils"
)

// AuthHandler exposes the login and role listing endpoints.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
	router.Get("/roles", h.roles)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Login(c.Context(), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to authenticate")
	}

	return utils.SendSuccess(c, "authenticated", result)
}

func (h *AuthHandler) roles(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "roles retrieved", h.service.Roles())
}
