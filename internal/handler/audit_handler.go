package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/escolalab/escolar-api/internal/service"
	"github.com/escolalab/escolar-api/internal/utils"
)

// AuditHandler exposes the audit trail to administrators and supervisors.
type AuditHandler struct {
	service service.AuditService
	logger  zerolog.Logger
}

// NewAuditHandler constructs an audit handler.
func NewAuditHandler(service service.AuditService, logger zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		service: service,
		logger:  logger.With().Str("component", "audit_handler").Logger(),
	}
}

// Register wires audit routes.
func (h *AuditHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *AuditHandler) list(c *fiber.Ctx) error {
	limit := c.QueryInt("limit")

	entries, err := h.service.List(c.Context(), claimsFromContext(c), schoolQuery(c), limit)
	if err != nil {
		return respondError(c, h.logger, err, "failed to list audit entries")
	}

	return utils.SendSuccess(c, "audit entries retrieved", entries)
}
