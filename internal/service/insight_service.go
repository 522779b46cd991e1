package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/escolalab/escolar-api/internal/dto"
	"github.com/escolalab/escolar-api/internal/models"
	"github.com/escolalab/escolar-api/internal/repository"
	"github.com/escolalab/escolar-api/internal/tenancy"
	"github.com/escolalab/escolar-api/pkg/ai"
)

// InsightService manages generated commentary about students. An insight row
// is persisted only after the generator succeeds; a failed generation leaves
// no trace beyond the log.
type InsightService interface {
	ListByStudent(ctx context.Context, claims tenancy.Claims, studentID uint, requestedSchool uint) ([]models.Insight, error)
	Generate(ctx context.Context, claims tenancy.Claims, req dto.InsightGenerateRequest) (models.Insight, error)
}

type insightService struct {
	repo        repository.InsightRepository
	students    repository.StudentRepository
	generator   ai.Generator
	cache       *redis.Client
	snapshotTTL time.Duration
	validator   *validator.Validate
	audit       AuditRecorder
	tracer      trace.Tracer
	logger      zerolog.Logger
}

// NewInsightService constructs the insight service. cache may be nil; the
// snapshot is then rebuilt from the store on every generation.
func NewInsightService(repo repository.InsightRepository, students repository.StudentRepository, generator ai.Generator, cache *redis.Client, snapshotTTL time.Duration, validator *validator.Validate, audit AuditRecorder, logger zerolog.Logger) InsightService {
	return &insightService{
		repo:        repo,
		students:    students,
		generator:   generator,
		cache:       cache,
		snapshotTTL: snapshotTTL,
		validator:   validator,
		audit:       audit,
		tracer:      otel.Tracer("escolar/insight"),
		logger:      logger.With().Str("component", "insight_service").Logger(),
	}
}

func (s *insightService) ListByStudent(ctx context.Context, claims tenancy.Claims, studentID uint, requestedSchool uint) ([]models.Insight, error) {
	if err := guard(claims.Role, tenancy.EntityInsight, tenancy.OpRead); err != nil {
		return nil, err
	}

	scope, err := tenancy.Resolve(claims, requestedSchool)
	if err != nil {
		return nil, err
	}
	if scope.EmptyListing {
		return []models.Insight{}, nil
	}
	if err := ensureSameSchool(ctx, scope, studentID, s.students.SchoolIDOf, ErrStudentNotFound); err != nil {
		return nil, err
	}

	return s.repo.ListByStudent(ctx, studentID)
}

func (s *insightService) Generate(ctx context.Context, claims tenancy.Claims, req dto.InsightGenerateRequest) (models.Insight, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Insight{}, err
	}
	if err := guard(claims.Role, tenancy.EntityInsight, tenancy.OpCreate); err != nil {
		return models.Insight{}, err
	}

	scope, err := tenancy.ResolveWrite(claims, req.SchoolID)
	if err != nil {
		return models.Insight{}, err
	}
	if err := ensureSameSchool(ctx, scope, req.StudentID, s.students.SchoolIDOf, ErrStudentNotFound); err != nil {
		return models.Insight{}, err
	}

	ctx, span := s.tracer.Start(ctx, "insight.generate",
		trace.WithAttributes(attribute.Int64("student.id", int64(req.StudentID))))
	defer span.End()

	raw, err := s.snapshot(ctx, req.StudentID)
	if err != nil {
		span.RecordError(err)
		return models.Insight{}, err
	}

	var snapshot map[string]interface{}
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return models.Insight{}, err
	}

	text, err := s.generator.Generate(ctx, ai.InsightInput{
		Prompt:   req.Prompt,
		Snapshot: snapshot,
	})
	if err != nil {
		span.RecordError(err)
		s.logger.Error().Err(err).Uint("student_id", req.StudentID).Msg("insight generation failed")
		return models.Insight{}, ErrInsightUnavailable
	}

	insight := models.Insight{
		StudentID:     req.StudentID,
		InputSnapshot: datatypes.JSON(raw),
		Text:          text,
		GeneratedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, &insight); err != nil {
		return models.Insight{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "insight.generate",
		EntityType: "insight",
		EntityID:   &insight.ID,
		SchoolID:   &scope.SchoolID,
		Metadata:   map[string]interface{}{"student_id": req.StudentID},
	})

	return insight, nil
}

// snapshot returns the student's bundle as JSON, going through the cache when
// one is configured. Cache failures fall back to the store.
func (s *insightService) snapshot(ctx context.Context, studentID uint) ([]byte, error) {
	key := fmt.Sprintf("insight:snapshot:%d", studentID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			return cached, nil
		}
	}

	bundle, err := s.students.GetBundle(ctx, studentID)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(bundle)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, raw, s.snapshotTTL).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to cache insight snapshot")
		}
	}

	return raw, nil
}
