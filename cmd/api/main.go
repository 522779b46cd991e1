package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/escolalab/escolar-api/internal/config"
	"github.com/escolalab/escolar-api/internal/database"
	"github.com/escolalab/escolar-api/internal/handler"
	"github.com/escolalab/escolar-api/internal/middleware"
	"github.com/escolalab/escolar-api/internal/models"
	"github.com/escolalab/escolar-api/internal/repository"
	"github.com/escolalab/escolar-api/internal/router"
	"github.com/escolalab/escolar-api/internal/service"
	"github.com/escolalab/escolar-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.School{},
		&models.Staff{},
		&models.Class{},
		&models.Subject{},
		&models.Student{},
		&models.Activity{},
		&models.Evaluation{},
		&models.BimonthlyGrade{},
		&models.Observation{},
		&models.Condition{},
		&models.Insight{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	generator, err := buildGenerator(cfg, logger)
	if err != nil {
		log.Fatalf("failed to build insight generator: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	schoolRepo := repository.NewSchoolRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	classRepo := repository.NewClassRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	observationRepo := repository.NewObservationRepository(db)
	conditionRepo := repository.NewConditionRepository(db)
	insightRepo := repository.NewInsightRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	auditService := service.NewAuditService(auditRepo, natsConn, logger)
	authService := service.NewAuthService(staffRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	schoolService := service.NewSchoolService(schoolRepo, validate, auditService, logger)
	staffService := service.NewStaffService(staffRepo, schoolRepo, validate, auditService, cfg.BcryptCost, logger)
	classService := service.NewClassService(classRepo, schoolRepo, validate, auditService, logger)
	subjectService := service.NewSubjectService(subjectRepo, schoolRepo, validate, auditService, logger)
	studentService := service.NewStudentService(studentRepo, classRepo, validate, auditService, logger)
	activityService := service.NewActivityService(activityRepo, subjectRepo, staffRepo, validate, auditService, logger)
	evaluationService := service.NewEvaluationService(evaluationRepo, studentRepo, activityRepo, validate, auditService, logger)
	gradeService := service.NewGradeService(gradeRepo, studentRepo, subjectRepo, validate, auditService, logger)
	observationService := service.NewObservationService(observationRepo, studentRepo, validate, auditService, logger)
	conditionService := service.NewConditionService(conditionRepo, studentRepo, validate, auditService, logger)
	insightService := service.NewInsightService(insightRepo, studentRepo, generator, redisClient, cfg.SnapshotTTL, validate, auditService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSOrigins})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:        handler.NewAuthHandler(authService, logger),
		SchoolHandler:      handler.NewSchoolHandler(schoolService, logger),
		StaffHandler:       handler.NewStaffHandler(staffService, logger),
		ClassHandler:       handler.NewClassHandler(classService, logger),
		SubjectHandler:     handler.NewSubjectHandler(subjectService, logger),
		StudentHandler:     handler.NewStudentHandler(studentService, logger),
		ActivityHandler:    handler.NewActivityHandler(activityService, logger),
		EvaluationHandler:  handler.NewEvaluationHandler(evaluationService, logger),
		GradeHandler:       handler.NewGradeHandler(gradeService, logger),
		ObservationHandler: handler.NewObservationHandler(observationService, logger),
		ConditionHandler:   handler.NewConditionHandler(conditionService, logger),
		InsightHandler:     handler.NewInsightHandler(insightService, logger),
		AuditHandler:       handler.NewAuditHandler(auditService, logger),
		HealthHandler:      handler.NewHealthHandler(cfg.AppName, cfg.AppEnv),
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
		LoginRateLimit:     middleware.RateLimit("login", 10, time.Minute),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildGenerator(cfg config.Config, logger zerolog.Logger) (ai.Generator, error) {
	switch cfg.AIProvider {
	case "anthropic":
		return ai.NewAnthropicGenerator(ai.AnthropicConfig{
			APIKey: cfg.AnthropicAPIKey,
			Model:  cfg.InsightModel,
		})
	default:
		return ai.NewOpenAIGenerator(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.InsightModel,
			Logger: logger,
		})
	}
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
