package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/escolalab/escolar-api/internal/dto"
	"github.com/escolalab/escolar-api/internal/service"
	"github.com/escolalab/escolar-api/internal/utils"
)

// EvaluationHandler exposes evaluation endpoints.
type EvaluationHandler struct {
	service service.EvaluationService
	logger  zerolog.Logger
}

// NewEvaluationHandler constructs an evaluation handler.
func NewEvaluationHandler(service service.EvaluationService, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
		logger:  logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// Register wires evaluation routes.
func (h *EvaluationHandler) Register(router fiber.Router) {
	router.Get("/student/:studentId", h.listByStudent)
	router.Post("", h.save)
	router.Delete("/:id", h.delete)
}

func (h *EvaluationHandler) listByStudent(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	evals, err := h.service.ListByStudent(c.Context(), claimsFromContext(c), studentID, schoolQuery(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list evaluations")
	}

	return utils.SendSuccess(c, "evaluations retrieved", evals)
}

func (h *EvaluationHandler) save(c *fiber.Ctx) error {
	var req dto.EvaluationUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	eval, err := h.service.Save(c.Context(), claimsFromContext(c), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to save evaluation")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "evaluation saved", eval)
}

func (h *EvaluationHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), claimsFromContext(c), id, schoolQuery(c)); err != nil {
		return respondError(c, h.logger, err, "failed to delete evaluation")
	}

	return utils.SendSuccess(c, "evaluation deleted", nil)
}
