package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/escolalab/escolar-api/internal/dto"
	"github.com/escolalab/escolar-api/internal/service"
	"github.com/escolalab/escolar-api/internal/utils"
)

// StaffHandler exposes staff management endpoints.
type StaffHandler struct {
	service service.StaffService
	logger  zerolog.Logger
}

// NewStaffHandler constructs a staff handler.
func NewStaffHandler(service service.StaffService, logger zerolog.Logger) *StaffHandler {
	return &StaffHandler{
		service: service,
		logger:  logger.With().Str("component", "staff_handler").Logger(),
	}
}

// Register wires staff routes.
func (h *StaffHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *StaffHandler) list(c *fiber.Ctx) error {
	staff, err := h.service.List(c.Context(), claimsFromContext(c), schoolQuery(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to list staff")
	}

	return utils.SendSuccess(c, "staff retrieved", staff)
}

func (h *StaffHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	staff, err := h.service.Get(c.Context(), claimsFromContext(c), id, schoolQuery(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to get staff member")
	}

	return utils.SendSuccess(c, "staff member retrieved", staff)
}

func (h *StaffHandler) create(c *fiber.Ctx) error {
	var req dto.StaffCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	staff, err := h.service.Create(c.Context(), claimsFromContext(c), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to create staff member")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "staff member created", staff)
}

func (h *StaffHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var req dto.StaffUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	staff, err := h.service.Update(c.Context(), claimsFromContext(c), id, req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update staff member")
	}

	return utils.SendSuccess(c, "staff member updated", staff)
}

func (h *StaffHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), claimsFromContext(c), id, schoolQuery(c)); err != nil {
		return respondError(c, h.logger, err, "failed to delete staff member")
	}

	return utils.SendSuccess(c, "staff member deleted", nil)
}
