package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/escolalab/escolar-api/internal/dto"
	"github.com/escolalab/escolar-api/internal/service"
	"github.com/escolalab/escolar-api/internal/utils"
)

// SchoolHandler exposes tenant management endpoints.
type SchoolHandler struct {
	service service.SchoolService
	logger  zerolog.Logger
}

// NewSchoolHandler constructs a school handler.
func NewSchoolHandler(service service.SchoolService, logger zerolog.Logger) *SchoolHandler {
	return &SchoolHandler{
		service: service,
		logger:  logger.With().Str("component", "school_handler").Logger(),
	}
}

// Register wires school routes.
func (h *SchoolHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *SchoolHandler) list(c *fiber.Ctx) error {
	schools, err := h.service.List(c.Context(), claimsFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list schools")
	}

	return utils.SendSuccess(c, "schools retrieved", schools)
}

func (h *SchoolHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	school, err := h.service.Get(c.Context(), claimsFromContext(c), id)
	if err != nil {
		return respondError(c, h.logger, err, "failed to get school")
	}

	return utils.SendSuccess(c, "school retrieved", school)
}

func (h *SchoolHandler) create(c *fiber.Ctx) error {
	var req dto.SchoolCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	school, err := h.service.Create(c.Context(), claimsFromContext(c), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to create school")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "school created", school)
}

func (h *SchoolHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var req dto.SchoolUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	school, err := h.service.Update(c.Context(), claimsFromContext(c), id, req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update school")
	}

	return utils.SendSuccess(c, "school updated", school)
}

func (h *SchoolHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), claimsFromContext(c), id); err != nil {
		return respondError(c, h.logger, err, "failed to delete school")
	}

	return utils.SendSuccess(c, "school deleted", nil)
}
