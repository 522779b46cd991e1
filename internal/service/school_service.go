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

// SchoolService manages tenant records. Mutations are administrator-only;
// everyone else sees just their own school.
type SchoolService interface {
	List(ctx context.Context, claims tenancy.Claims) ([]models.School, error)
	Get(ctx context.Context, claims tenancy.Claims, id uint) (models.School, error)
	Create(ctx context.Context, claims tenancy.Claims, req dto.SchoolCreateRequest) (models.School, error)
	Update(ctx context.Context, claims tenancy.Claims, id uint, req dto.SchoolUpdateRequest) (models.School, error)
	Delete(ctx context.Context, claims tenancy.Claims, id uint) error
}

type schoolService struct {
	repo      repository.SchoolRepository
	validator *validator.Validate
	audit     AuditRecorder
	logger    zerolog.Logger
}

// NewSchoolService constructs the school service.
func NewSchoolService(repo repository.SchoolRepository, validator *validator.Validate, audit AuditRecorder, logger zerolog.Logger) SchoolService {
	return &schoolService{
		repo:      repo,
		validator: validator,
		audit:     audit,
		logger:    logger.With().Str("component", "school_service").Logger(),
	}
}

func (s *schoolService) List(ctx context.Context, claims tenancy.Claims) ([]models.School, error) {
	if err := guard(claims.Role, tenancy.EntitySchool, tenancy.OpRead); err != nil {
		return nil, err
	}

	if claims.Role == tenancy.RoleAdministrator {
		return s.repo.List(ctx)
	}

	home := claims.HomeSchool()
	if home == 0 {
		return nil, tenancy.ErrNoSchool
	}

	school, err := s.repo.GetByID(ctx, home)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.School{}, nil
		}
		return nil, err
	}

	return []models.School{school}, nil
}

func (s *schoolService) Get(ctx context.Context, claims tenancy.Claims, id uint) (models.School, error) {
	if err := guard(claims.Role, tenancy.EntitySchool, tenancy.OpRead); err != nil {
		return models.School{}, err
	}

	if claims.Role != tenancy.RoleAdministrator && claims.HomeSchool() != id {
		return models.School{}, ErrWrongSchool
	}

	school, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.School{}, ErrSchoolNotFound
		}
		return models.School{}, err
	}

	return school, nil
}

func (s *schoolService) Create(ctx context.Context, claims tenancy.Claims, req dto.SchoolCreateRequest) (models.School, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.School{}, err
	}
	if err := guard(claims.Role, tenancy.EntitySchool, tenancy.OpCreate); err != nil {
		return models.School{}, err
	}

	school := models.School{Name: req.Name, Address: req.Address}
	if err := s.repo.Create(ctx, &school); err != nil {
		return models.School{}, err
	}

	s.logger.Info().Uint("school_id", school.ID).Msg("school created")
	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "school.create",
		EntityType: "school",
		EntityID:   &school.ID,
		SchoolID:   &school.ID,
	})

	return school, nil
}

func (s *schoolService) Update(ctx context.Context, claims tenancy.Claims, id uint, req dto.SchoolUpdateRequest) (models.School, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.School{}, err
	}
	if err := guard(claims.Role, tenancy.EntitySchool, tenancy.OpUpdate); err != nil {
		return models.School{}, err
	}

	school := models.School{ID: id, Name: req.Name, Address: req.Address}
	if err := s.repo.Update(ctx, &school); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.School{}, ErrSchoolNotFound
		}
		return models.School{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "school.update",
		EntityType: "school",
		EntityID:   &id,
		SchoolID:   &id,
	})

	return s.Get(ctx, claims, id)
}

func (s *schoolService) Delete(ctx context.Context, claims tenancy.Claims, id uint) error {
	if err := guard(claims.Role, tenancy.EntitySchool, tenancy.OpDelete); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSchoolNotFound
		}
		return err
	}

	s.logger.Info().Uint("school_id", id).Msg("school deleted")
	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "school.delete",
		EntityType: "school",
		EntityID:   &id,
		SchoolID:   &id,
	})

	return nil
}
