package handler

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/service"
	"github.com/escolalab/escolar-api/internal/tenancy"
	"github.com/escolalab/escolar-api/internal/utils"
)

// claimsFromContext rebuilds the actor claims stored by the JWT middleware.
func claimsFromContext(c *fiber.Ctx) tenancy.Claims {
	claims := tenancy.Claims{}

	if id, ok := c.Locals("staff_id").(uint); ok {
		claims.StaffID = id
	}
	if name, ok := c.Locals("staff_name").(string); ok {
		claims.Name = name
	}
	if role, ok := c.Locals("staff_role").(string); ok {
		if parsed, err := tenancy.ParseRole(role); err == nil {
			claims.Role = parsed
		}
	}
	if school, ok := c.Locals("school_id").(uint); ok && school != 0 {
		claims.SchoolID = &school
	}

	return claims
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || value == 0 {
		return 0, errors.New("invalid " + name)
	}
	return uint(value), nil
}

// schoolQuery reads the optional school selector an administrator supplies on
// reads. It is advisory only; the tenancy resolver decides what it means.
func schoolQuery(c *fiber.Ctx) uint {
	value := c.QueryInt("school_id")
	if value < 0 {
		return 0
	}
	return uint(value)
}

var forbiddenErrors = []error{
	service.ErrNotPermitted,
	service.ErrWrongSchool,
	service.ErrNotOwnActivity,
	service.ErrCannotDeleteSelf,
	tenancy.ErrNoSchool,
	tenancy.ErrNoViewingSchool,
	tenancy.ErrSchoolMismatch,
}

var notFoundErrors = []error{
	service.ErrSchoolNotFound,
	service.ErrStaffNotFound,
	service.ErrClassNotFound,
	service.ErrSubjectNotFound,
	service.ErrStudentNotFound,
	service.ErrActivityNotFound,
	service.ErrEvaluationNotFound,
	service.ErrGradeNotFound,
	service.ErrConditionNotFound,
}

var badRequestErrors = []error{
	service.ErrInvalidRole,
	service.ErrScoreExceedsMax,
	tenancy.ErrUnknownRole,
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondError translates service failures into the HTTP error taxonomy.
// Unexpected errors are logged and reported with the fallback message so
// internals never leak to clients.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error, fallback string) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs), matchesAny(err, badRequestErrors):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	case matchesAny(err, forbiddenErrors):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	case matchesAny(err, notFoundErrors):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return utils.SendError(c, fiber.StatusConflict, "record already exists")
	default:
		logger.Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
