package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/escolalab/escolar-api/internal/dto"
	"github.com/escolalab/escolar-api/internal/service"
	"github.com/escolalab/escolar-api/internal/utils"
)

// ObservationHandler exposes the append-only observation log.
type ObservationHandler struct {
	service service.ObservationService
	logger  zerolog.Logger
}

// NewObservationHandler constructs an observation handler.
func NewObservationHandler(service service.ObservationService, logger zerolog.Logger) *ObservationHandler {
	return &ObservationHandler{
		service: service,
		logger:  logger.With().Str("component", "observation_handler").Logger(),
	}
}

// Register wires observation routes. There is deliberately no update or
// delete route.
func (h *ObservationHandler) Register(router fiber.Router) {
	router.Get("/student/:studentId", h.listByStudent)
	router.Post("", h.create)
}

func (h *ObservationHandler) listByStudent(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	observations, err := h.service.ListByStudent(c.Context(), claimsFromContext(c), studentID, schoolQuery(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list observations")
	}

	return utils.SendSuccess(c, "observations retrieved", observations)
}

func (h *ObservationHandler) create(c *fiber.Ctx) error {
	var req dto.ObservationCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	observation, err := h.service.Create(c.Context(), claimsFromContext(c), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to create observation")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "observation created", observation)
}
