package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/escolalab/escolar-api/internal/dto"
	"github.com/escolalab/escolar-api/internal/service"
	"github.com/escolalab/escolar-api/internal/utils"
)

// GradeHandler exposes bimonthly grade endpoints.
type GradeHandler struct {
	service service.GradeService
	logger  zerolog.Logger
}

// NewGradeHandler constructs a grade handler.
func NewGradeHandler(service service.GradeService, logger zerolog.Logger) *GradeHandler {
	return &GradeHandler{
		service: service,
		logger:  logger.With().Str("component", "grade_handler").Logger(),
	}
}

// Register wires grade routes.
func (h *GradeHandler) Register(router fiber.Router) {
	router.Get("/student/:studentId", h.listByStudent)
	router.Post("", h.save)
	router.Post("/batch", h.saveBatch)
	router.Delete("", h.delete)
}

func (h *GradeHandler) listByStudent(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	grades, err := h.service.ListByStudent(c.Context(), claimsFromContext(c), studentID, schoolQuery(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list grades")
	}

	return utils.SendSuccess(c, "grades retrieved", grades)
}

func (h *GradeHandler) save(c *fiber.Ctx) error {
	var req dto.GradeUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	grade, err := h.service.Save(c.Context(), claimsFromContext(c), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to save grade")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "grade saved", grade)
}

func (h *GradeHandler) saveBatch(c *fiber.Ctx) error {
	var req dto.GradeBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	grades, err := h.service.SaveBatch(c.Context(), claimsFromContext(c), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to save grades")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "grades saved", grades)
}

func (h *GradeHandler) delete(c *fiber.Ctx) error {
	var req dto.GradeDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.Delete(c.Context(), claimsFromContext(c), req); err != nil {
		return respondError(c, h.logger, err, "failed to delete grade")
	}

	return utils.SendSuccess(c, "grade deleted", nil)
}
