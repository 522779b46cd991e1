package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/escolalab/escolar-api/internal/dto"
	"github.com/escolalab/escolar-api/internal/service"
	"github.com/escolalab/escolar-api/internal/utils"
)

// InsightHandler exposes generated insight endpoints.
type InsightHandler struct {
	service service.InsightService
	logger  zerolog.Logger
}

// NewInsightHandler constructs an insight handler.
func NewInsightHandler(service service.InsightService, logger zerolog.Logger) *InsightHandler {
	return &InsightHandler{
		service: service,
		logger:  logger.With().Str("component", "insight_handler").Logger(),
	}
}

// Register wires insight routes.
func (h *InsightHandler) Register(router fiber.Router) {
	router.Get("/student/:studentId", h.listByStudent)
	router.Post("/student/:studentId", h.generate)
}

func (h *InsightHandler) listByStudent(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	insights, err := h.service.ListByStudent(c.Context(), claimsFromContext(c), studentID, schoolQuery(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list insights")
	}

	return utils.SendSuccess(c, "insights retrieved", insights)
}

func (h *InsightHandler) generate(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var req dto.InsightGenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.StudentID = studentID

	insight, err := h.service.Generate(c.Context(), claimsFromContext(c), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to generate insight")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "insight generated", insight)
}
