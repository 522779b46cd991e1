package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/dto"
	"github.com/escolalab/escolar-api/internal/models"
	"github.com/escolalab/escolar-api/internal/repository"
	"github.com/escolalab/escolar-api/internal/tenancy"
)

// SubjectService manages subjects within the operating school.
type SubjectService interface {
	List(ctx context.Context, claims tenancy.Claims, requestedSchool uint) ([]models.Subject, error)
	Get(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) (models.Subject, error)
	Create(ctx context.Context, claims tenancy.Claims, req dto.SubjectCreateRequest) (models.Subject, error)
	Update(ctx context.Context, claims tenancy.Claims, id uint, req dto.SubjectUpdateRequest, requestedSchool uint) (models.Subject, error)
	Delete(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) error
}

type subjectService struct {
	repo      repository.SubjectRepository
	schools   repository.SchoolRepository
	validator *validator.Validate
	audit     AuditRecorder
	logger    zerolog.Logger
}

// NewSubjectService constructs the subject service.
func NewSubjectService(repo repository.SubjectRepository, schools repository.SchoolRepository, validator *validator.Validate, audit AuditRecorder, logger zerolog.Logger) SubjectService {
	return &subjectService{
		repo:      repo,
		schools:   schools,
		validator: validator,
		audit:     audit,
		logger:    logger.With().Str("component", "subject_service").Logger(),
	}
}

func (s *subjectService) List(ctx context.Context, claims tenancy.Claims, requestedSchool uint) ([]models.Subject, error) {
	if err := guard(claims.Role, tenancy.EntitySubject, tenancy.OpRead); err != nil {
		return nil, err
	}

	scope, err := tenancy.Resolve(claims, requestedSchool)
	if err != nil {
		return nil, err
	}
	if scope.EmptyListing {
		return []models.Subject{}, nil
	}

	return s.repo.ListBySchool(ctx, scope.SchoolID)
}

func (s *subjectService) Get(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) (models.Subject, error) {
	if err := guard(claims.Role, tenancy.EntitySubject, tenancy.OpRead); err != nil {
		return models.Subject{}, err
	}

	scope, err := tenancy.Resolve(claims, requestedSchool)
	if err != nil {
		return models.Subject{}, err
	}
	if err := ensureSameSchool(ctx, scope, id, s.repo.SchoolIDOf, ErrSubjectNotFound); err != nil {
		return models.Subject{}, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *subjectService) Create(ctx context.Context, claims tenancy.Claims, req dto.SubjectCreateRequest) (models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Subject{}, err
	}
	if err := guard(claims.Role, tenancy.EntitySubject, tenancy.OpCreate); err != nil {
		return models.Subject{}, err
	}

	scope, err := tenancy.ResolveWrite(claims, req.SchoolID)
	if err != nil {
		return models.Subject{}, err
	}
	exists, err := s.schools.Exists(ctx, scope.SchoolID)
	if err != nil {
		return models.Subject{}, err
	}
	if !exists {
		return models.Subject{}, ErrSchoolNotFound
	}

	subject := models.Subject{Name: req.Name, SchoolID: scope.SchoolID}
	if err := s.repo.Create(ctx, &subject); err != nil {
		return models.Subject{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "subject.create",
		EntityType: "subject",
		EntityID:   &subject.ID,
		SchoolID:   &subject.SchoolID,
	})

	return subject, nil
}

func (s *subjectService) Update(ctx context.Context, claims tenancy.Claims, id uint, req dto.SubjectUpdateRequest, requestedSchool uint) (models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Subject{}, err
	}
	if err := guard(claims.Role, tenancy.EntitySubject, tenancy.OpUpdate); err != nil {
		return models.Subject{}, err
	}

	scope, err := tenancy.ResolveWrite(claims, requestedSchool)
	if err != nil {
		return models.Subject{}, err
	}
	if err := ensureSameSchool(ctx, scope, id, s.repo.SchoolIDOf, ErrSubjectNotFound); err != nil {
		return models.Subject{}, err
	}

	subject := models.Subject{ID: id, Name: req.Name}
	if err := s.repo.Update(ctx, &subject); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Subject{}, ErrSubjectNotFound
		}
		return models.Subject{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "subject.update",
		EntityType: "subject",
		EntityID:   &id,
		SchoolID:   &scope.SchoolID,
	})

	return s.repo.GetByID(ctx, id)
}

func (s *subjectService) Delete(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) error {
	if err := guard(claims.Role, tenancy.EntitySubject, tenancy.OpDelete); err != nil {
		return err
	}

	scope, err := tenancy.ResolveWrite(claims, requestedSchool)
	if err != nil {
		return err
	}
	if err := ensureSameSchool(ctx, scope, id, s.repo.SchoolIDOf, ErrSubjectNotFound); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "subject.delete",
		EntityType: "subject",
		EntityID:   &id,
		SchoolID:   &scope.SchoolID,
	})

	return nil
}
