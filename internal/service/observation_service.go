package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/escolalab/escolar-api/internal/dto"
	"github.com/escolalab/escolar-api/internal/models"
	"github.com/escolalab/escolar-api/internal/repository"
	"github.com/escolalab/escolar-api/internal/tenancy"
)

// ObservationService manages the append-only observation log. Notes are never
// updated or individually deleted; they leave the store only through the
// student cascade.
type ObservationService interface {
	ListByStudent(ctx context.Context, claims tenancy.Claims, studentID uint, requestedSchool uint) ([]models.Observation, error)
	Create(ctx context.Context, claims tenancy.Claims, req dto.ObservationCreateRequest) (models.Observation, error)
}

type observationService struct {
	repo      repository.ObservationRepository
	students  repository.StudentRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	audit     AuditRecorder
	logger    zerolog.Logger
}

// NewObservationService constructs the observation service.
func NewObservationService(repo repository.ObservationRepository, students repository.StudentRepository, validator *validator.Validate, audit AuditRecorder, logger zerolog.Logger) ObservationService {
	return &observationService{
		repo:      repo,
		students:  students,
		validator: validator,
		sanitizer: bluemonday.StrictPolicy(),
		audit:     audit,
		logger:    logger.With().Str("component", "observation_service").Logger(),
	}
}

func (s *observationService) ListByStudent(ctx context.Context, claims tenancy.Claims, studentID uint, requestedSchool uint) ([]models.Observation, error) {
	if err := guard(claims.Role, tenancy.EntityObservation, tenancy.OpRead); err != nil {
		return nil, err
	}

	scope, err := tenancy.Resolve(claims, requestedSchool)
	if err != nil {
		return nil, err
	}
	if scope.EmptyListing {
		return []models.Observation{}, nil
	}
	if err := ensureSameSchool(ctx, scope, studentID, s.students.SchoolIDOf, ErrStudentNotFound); err != nil {
		return nil, err
	}

	return s.repo.ListByStudent(ctx, studentID)
}

func (s *observationService) Create(ctx context.Context, claims tenancy.Claims, req dto.ObservationCreateRequest) (models.Observation, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Observation{}, err
	}
	if err := guard(claims.Role, tenancy.EntityObservation, tenancy.OpCreate); err != nil {
		return models.Observation{}, err
	}

	scope, err := tenancy.ResolveWrite(claims, req.SchoolID)
	if err != nil {
		return models.Observation{}, err
	}
	if err := ensureSameSchool(ctx, scope, req.StudentID, s.students.SchoolIDOf, ErrStudentNotFound); err != nil {
		return models.Observation{}, err
	}

	observation := models.Observation{
		StudentID: req.StudentID,
		TeacherID: claims.StaffID,
		Text:      strings.TrimSpace(s.sanitizer.Sanitize(req.Text)),
	}
	if err := s.repo.Create(ctx, &observation); err != nil {
		return models.Observation{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "observation.create",
		EntityType: "observation",
		EntityID:   &observation.ID,
		SchoolID:   &scope.SchoolID,
		Metadata:   map[string]interface{}{"student_id": req.StudentID},
	})

	return observation, nil
}
