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

// ClassService manages classes within the operating school.
type ClassService interface {
	List(ctx context.Context, claims tenancy.Claims, requestedSchool uint) ([]models.Class, error)
	Get(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) (models.Class, error)
	Create(ctx context.Context, claims tenancy.Claims, req dto.ClassCreateRequest) (models.Class, error)
	Update(ctx context.Context, claims tenancy.Claims, id uint, req dto.ClassUpdateRequest, requestedSchool uint) (models.Class, error)
	Delete(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) error
}

type classService struct {
	repo      repository.ClassRepository
	schools   repository.SchoolRepository
	validator *validator.Validate
	audit     AuditRecorder
	logger    zerolog.Logger
}

// NewClassService constructs the class service.
func NewClassService(repo repository.ClassRepository, schools repository.SchoolRepository, validator *validator.Validate, audit AuditRecorder, logger zerolog.Logger) ClassService {
	return &classService{
		repo:      repo,
		schools:   schools,
		validator: validator,
		audit:     audit,
		logger:    logger.With().Str("component", "class_service").Logger(),
	}
}

func (s *classService) List(ctx context.Context, claims tenancy.Claims, requestedSchool uint) ([]models.Class, error) {
	if err := guard(claims.Role, tenancy.EntityClass, tenancy.OpRead); err != nil {
		return nil, err
	}

	scope, err := tenancy.Resolve(claims, requestedSchool)
	if err != nil {
		return nil, err
	}
	if scope.EmptyListing {
		return []models.Class{}, nil
	}

	return s.repo.ListBySchool(ctx, scope.SchoolID)
}

func (s *classService) Get(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) (models.Class, error) {
	if err := guard(claims.Role, tenancy.EntityClass, tenancy.OpRead); err != nil {
		return models.Class{}, err
	}

	scope, err := tenancy.Resolve(claims, requestedSchool)
	if err != nil {
		return models.Class{}, err
	}
	if err := ensureSameSchool(ctx, scope, id, s.repo.SchoolIDOf, ErrClassNotFound); err != nil {
		return models.Class{}, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *classService) Create(ctx context.Context, claims tenancy.Claims, req dto.ClassCreateRequest) (models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Class{}, err
	}
	if err := guard(claims.Role, tenancy.EntityClass, tenancy.OpCreate); err != nil {
		return models.Class{}, err
	}

	scope, err := tenancy.ResolveWrite(claims, req.SchoolID)
	if err != nil {
		return models.Class{}, err
	}
	exists, err := s.schools.Exists(ctx, scope.SchoolID)
	if err != nil {
		return models.Class{}, err
	}
	if !exists {
		return models.Class{}, ErrSchoolNotFound
	}

	class := models.Class{Name: req.Name, SchoolID: scope.SchoolID}
	if err := s.repo.Create(ctx, &class); err != nil {
		return models.Class{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "class.create",
		EntityType: "class",
		EntityID:   &class.ID,
		SchoolID:   &class.SchoolID,
	})

	return class, nil
}

func (s *classService) Update(ctx context.Context, claims tenancy.Claims, id uint, req dto.ClassUpdateRequest, requestedSchool uint) (models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Class{}, err
	}
	if err := guard(claims.Role, tenancy.EntityClass, tenancy.OpUpdate); err != nil {
		return models.Class{}, err
	}

	scope, err := tenancy.ResolveWrite(claims, requestedSchool)
	if err != nil {
		return models.Class{}, err
	}
	if err := ensureSameSchool(ctx, scope, id, s.repo.SchoolIDOf, ErrClassNotFound); err != nil {
		return models.Class{}, err
	}

	class := models.Class{ID: id, Name: req.Name}
	if err := s.repo.Update(ctx, &class); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Class{}, ErrClassNotFound
		}
		return models.Class{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "class.update",
		EntityType: "class",
		EntityID:   &id,
		SchoolID:   &scope.SchoolID,
	})

	return s.repo.GetByID(ctx, id)
}

func (s *classService) Delete(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) error {
	if err := guard(claims.Role, tenancy.EntityClass, tenancy.OpDelete); err != nil {
		return err
	}

	scope, err := tenancy.ResolveWrite(claims, requestedSchool)
	if err != nil {
		return err
	}
	if err := ensureSameSchool(ctx, scope, id, s.repo.SchoolIDOf, ErrClassNotFound); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "class.delete",
		EntityType: "class",
		EntityID:   &id,
		SchoolID:   &scope.SchoolID,
	})

	return nil
}
