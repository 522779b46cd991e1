package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/dto"
	"github.com/escolalab/escolar-api/internal/models"
	"github.com/escolalab/escolar-api/internal/repository"
	"github.com/escolalab/escolar-api/internal/tenancy"
)

// StudentService manages students, the largest aggregate root: deleting one
// cascades over every dependent record in a single transaction.
type StudentService interface {
	List(ctx context.Context, claims tenancy.Claims, requestedSchool uint) ([]models.Student, error)
	Get(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) (models.Student, error)
	GetBundle(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) (repository.StudentBundle, error)
	Create(ctx context.Context, claims tenancy.Claims, req dto.StudentCreateRequest) (models.Student, error)
	Update(ctx context.Context, claims tenancy.Claims, id uint, req dto.StudentUpdateRequest, requestedSchool uint) (models.Student, error)
	Delete(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) error
}

type studentService struct {
	repo      repository.StudentRepository
	classes   repository.ClassRepository
	validator *validator.Validate
	audit     AuditRecorder
	tracer    trace.Tracer
	logger    zerolog.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo repository.StudentRepository, classes repository.ClassRepository, validator *validator.Validate, audit AuditRecorder, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		classes:   classes,
		validator: validator,
		audit:     audit,
		tracer:    otel.Tracer("escolar/student"),
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) List(ctx context.Context, claims tenancy.Claims, requestedSchool uint) ([]models.Student, error) {
	if err := guard(claims.Role, tenancy.EntityStudent, tenancy.OpRead); err != nil {
		return nil, err
	}

	scope, err := tenancy.Resolve(claims, requestedSchool)
	if err != nil {
		return nil, err
	}
	if scope.EmptyListing {
		return []models.Student{}, nil
	}

	return s.repo.ListBySchool(ctx, scope.SchoolID)
}

func (s *studentService) Get(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) (models.Student, error) {
	if err := guard(claims.Role, tenancy.EntityStudent, tenancy.OpRead); err != nil {
		return models.Student{}, err
	}

	scope, err := tenancy.Resolve(claims, requestedSchool)
	if err != nil {
		return models.Student{}, err
	}
	if err := ensureSameSchool(ctx, scope, id, s.repo.SchoolIDOf, ErrStudentNotFound); err != nil {
		return models.Student{}, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *studentService) GetBundle(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) (repository.StudentBundle, error) {
	if err := guard(claims.Role, tenancy.EntityStudent, tenancy.OpRead); err != nil {
		return repository.StudentBundle{}, err
	}

	scope, err := tenancy.Resolve(claims, requestedSchool)
	if err != nil {
		return repository.StudentBundle{}, err
	}
	if err := ensureSameSchool(ctx, scope, id, s.repo.SchoolIDOf, ErrStudentNotFound); err != nil {
		return repository.StudentBundle{}, err
	}

	return s.repo.GetBundle(ctx, id)
}

func (s *studentService) Create(ctx context.Context, claims tenancy.Claims, req dto.StudentCreateRequest) (models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Student{}, err
	}
	if err := guard(claims.Role, tenancy.EntityStudent, tenancy.OpCreate); err != nil {
		return models.Student{}, err
	}

	scope, err := tenancy.ResolveWrite(claims, req.SchoolID)
	if err != nil {
		return models.Student{}, err
	}
	if err := ensureSameSchool(ctx, scope, req.ClassID, s.classes.SchoolIDOf, ErrClassNotFound); err != nil {
		return models.Student{}, err
	}

	student := models.Student{
		Name:         req.Name,
		Registration: req.Registration,
		Age:          req.Age,
		ClassID:      req.ClassID,
		SchoolID:     scope.SchoolID,
	}
	if err := s.repo.Create(ctx, &student); err != nil {
		return models.Student{}, err
	}

	s.logger.Info().Uint("student_id", student.ID).Uint("school_id", student.SchoolID).Msg("student enrolled")
	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "student.create",
		EntityType: "student",
		EntityID:   &student.ID,
		SchoolID:   &student.SchoolID,
	})

	return s.repo.GetByID(ctx, student.ID)
}

func (s *studentService) Update(ctx context.Context, claims tenancy.Claims, id uint, req dto.StudentUpdateRequest, requestedSchool uint) (models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Student{}, err
	}
	if err := guard(claims.Role, tenancy.EntityStudent, tenancy.OpUpdate); err != nil {
		return models.Student{}, err
	}

	scope, err := tenancy.ResolveWrite(claims, requestedSchool)
	if err != nil {
		return models.Student{}, err
	}
	if err := ensureSameSchool(ctx, scope, id, s.repo.SchoolIDOf, ErrStudentNotFound); err != nil {
		return models.Student{}, err
	}
	if err := ensureSameSchool(ctx, scope, req.ClassID, s.classes.SchoolIDOf, ErrClassNotFound); err != nil {
		return models.Student{}, err
	}

	student := models.Student{
		ID:           id,
		Name:         req.Name,
		Registration: req.Registration,
		Age:          req.Age,
		ClassID:      req.ClassID,
	}
	if err := s.repo.Update(ctx, &student); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Student{}, ErrStudentNotFound
		}
		return models.Student{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "student.update",
		EntityType: "student",
		EntityID:   &id,
		SchoolID:   &scope.SchoolID,
	})

	return s.repo.GetByID(ctx, id)
}

func (s *studentService) Delete(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) error {
	if err := guard(claims.Role, tenancy.EntityStudent, tenancy.OpDelete); err != nil {
		return err
	}

	scope, err := tenancy.ResolveWrite(claims, requestedSchool)
	if err != nil {
		return err
	}
	if err := ensureSameSchool(ctx, scope, id, s.repo.SchoolIDOf, ErrStudentNotFound); err != nil {
		return err
	}

	ctx, span := s.tracer.Start(ctx, "student.cascade_delete",
		trace.WithAttributes(attribute.Int64("student.id", int64(id))))
	defer span.End()

	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		span.RecordError(err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	s.logger.Info().Uint("student_id", id).Msg("student and dependents deleted")
	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "student.delete",
		EntityType: "student",
		EntityID:   &id,
		SchoolID:   &scope.SchoolID,
		Metadata:   map[string]interface{}{"cascade": true},
	})

	return nil
}
