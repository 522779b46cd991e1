package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/escolalab/escolar-api/internal/config"
	"github.com/escolalab/escolar-api/internal/handler"
	"github.com/escolalab/escolar-api/internal/middleware"
	"github.com/escolalab/escolar-api/internal/observability"
	"github.com/escolalab/escolar-api/internal/tenancy"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler        *handler.AuthHandler
	SchoolHandler      *handler.SchoolHandler
	StaffHandler       *handler.StaffHandler
	ClassHandler       *handler.ClassHandler
	SubjectHandler     *handler.SubjectHandler
	StudentHandler     *handler.StudentHandler
	ActivityHandler    *handler.ActivityHandler
	EvaluationHandler  *handler.EvaluationHandler
	GradeHandler       *handler.GradeHandler
	ObservationHandler *handler.ObservationHandler
	ConditionHandler   *handler.ConditionHandler
	InsightHandler     *handler.InsightHandler
	AuditHandler       *handler.AuditHandler
	HealthHandler      *handler.HealthHandler
	JWTMiddleware      fiber.Handler
	LoginRateLimit     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	if deps.HealthHandler != nil {
		deps.HealthHandler.Register(api)
	}
	app.Get("/metrics", observability.MetricsHandler())

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		if deps.LoginRateLimit != nil {
			auth.Use(deps.LoginRateLimit)
		}
		deps.AuthHandler.Register(auth)
	}

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	protected := api.Group("", jwtMiddleware)

	if deps.SchoolHandler != nil {
		deps.SchoolHandler.Register(protected.Group("/schools"))
	}
	if deps.StaffHandler != nil {
		deps.StaffHandler.Register(protected.Group("/staff"))
	}
	if deps.ClassHandler != nil {
		deps.ClassHandler.Register(protected.Group("/classes"))
	}
	if deps.SubjectHandler != nil {
		deps.SubjectHandler.Register(protected.Group("/subjects"))
	}
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(protected.Group("/students"))
	}
	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(protected.Group("/activities"))
	}
	if deps.EvaluationHandler != nil {
		deps.EvaluationHandler.Register(protected.Group("/evaluations"))
	}
	if deps.GradeHandler != nil {
		deps.GradeHandler.Register(protected.Group("/grades"))
	}
	if deps.ObservationHandler != nil {
		deps.ObservationHandler.Register(protected.Group("/observations"))
	}
	if deps.ConditionHandler != nil {
		deps.ConditionHandler.Register(protected.Group("/conditions"))
	}
	if deps.InsightHandler != nil {
		deps.InsightHandler.Register(protected.Group("/insights"))
	}
	if deps.AuditHandler != nil {
		audit := protected.Group("/audit",
			middleware.RequireRole(string(tenancy.RoleAdministrator), string(tenancy.RoleSupervisor)))
		deps.AuditHandler.Register(audit)
	}
}
