package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/escolalab/escolar-api/internal/dto"
	"github.com/escolalab/escolar-api/internal/service"
	"github.com/escolalab/escolar-api/internal/utils"
)

// ConditionHandler exposes condition endpoints.
type ConditionHandler struct {
	service service.ConditionService
	logger  zerolog.Logger
}

// NewConditionHandler constructs a condition handler.
func NewConditionHandler(service service.ConditionService, logger zerolog.Logger) *ConditionHandler {
	return &ConditionHandler{
		service: service,
		logger:  logger.With().Str("component", "condition_handler").Logger(),
	}
}

// Register wires condition routes.
func (h *ConditionHandler) Register(router fiber.Router) {
	router.Get("", h.suggestions)
	router.Get("/student/:studentId", h.listByStudent)
	router.Post("", h.create)
	router.Delete("/:id", h.delete)
}

func (h *ConditionHandler) suggestions(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "condition suggestions retrieved", h.service.Suggestions())
}

func (h *ConditionHandler) listByStudent(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	conditions, err := h.service.ListByStudent(c.Context(), claimsFromContext(c), studentID, schoolQuery(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list conditions")
	}

	return utils.SendSuccess(c, "conditions retrieved", conditions)
}

func (h *ConditionHandler) create(c *fiber.Ctx) error {
	var req dto.ConditionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	condition, err := h.service.Create(c.Context(), claimsFromContext(c), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to attach condition")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "condition attached", condition)
}

func (h *ConditionHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), claimsFromContext(c), id, schoolQuery(c)); err != nil {
		return respondError(c, h.logger, err, "failed to remove condition")
	}

	return utils.SendSuccess(c, "condition removed", nil)
}
