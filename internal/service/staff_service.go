package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/dto"
	"github.com/escolalab/escolar-api/internal/models"
	"github.com/escolalab/escolar-api/internal/repository"
	"github.com/escolalab/escolar-api/internal/tenancy"
)

// StaffService manages staff accounts within the operating school.
type StaffService interface {
	List(ctx context.Context, claims tenancy.Claims, requestedSchool uint) ([]models.Staff, error)
	Get(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) (models.Staff, error)
	Create(ctx context.Context, claims tenancy.Claims, req dto.StaffCreateRequest) (models.Staff, error)
	Update(ctx context.Context, claims tenancy.Claims, id uint, req dto.StaffUpdateRequest) (models.Staff, error)
	Delete(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) error
}

type staffService struct {
	repo       repository.StaffRepository
	schools    repository.SchoolRepository
	validator  *validator.Validate
	audit      AuditRecorder
	bcryptCost int
	logger     zerolog.Logger
}

// NewStaffService constructs the staff service.
func NewStaffService(repo repository.StaffRepository, schools repository.SchoolRepository, validator *validator.Validate, audit AuditRecorder, bcryptCost int, logger zerolog.Logger) StaffService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &staffService{
		repo:       repo,
		schools:    schools,
		validator:  validator,
		audit:      audit,
		bcryptCost: bcryptCost,
		logger:     logger.With().Str("component", "staff_service").Logger(),
	}
}

func (s *staffService) List(ctx context.Context, claims tenancy.Claims, requestedSchool uint) ([]models.Staff, error) {
	if err := guard(claims.Role, tenancy.EntityStaff, tenancy.OpRead); err != nil {
		return nil, err
	}

	scope, err := tenancy.Resolve(claims, requestedSchool)
	if err != nil {
		return nil, err
	}
	if scope.EmptyListing {
		return []models.Staff{}, nil
	}

	return s.repo.ListBySchool(ctx, scope.SchoolID)
}

func (s *staffService) Get(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) (models.Staff, error) {
	if err := guard(claims.Role, tenancy.EntityStaff, tenancy.OpRead); err != nil {
		return models.Staff{}, err
	}

	scope, err := tenancy.Resolve(claims, requestedSchool)
	if err != nil {
		return models.Staff{}, err
	}

	staff, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Staff{}, ErrStaffNotFound
		}
		return models.Staff{}, err
	}

	if !scope.EmptyListing && staff.SchoolID != nil && *staff.SchoolID != scope.SchoolID {
		return models.Staff{}, ErrWrongSchool
	}

	return staff, nil
}

func (s *staffService) Create(ctx context.Context, claims tenancy.Claims, req dto.StaffCreateRequest) (models.Staff, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Staff{}, err
	}
	if err := guard(claims.Role, tenancy.EntityStaff, tenancy.OpCreate); err != nil {
		return models.Staff{}, err
	}

	role, err := tenancy.ParseRole(req.Role)
	if err != nil {
		return models.Staff{}, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return models.Staff{}, err
	}

	staff := models.Staff{
		Name:         req.Name,
		Email:        req.Email,
		Registration: req.Registration,
		PasswordHash: string(hash),
		Role:         string(role),
	}

	// Administrators have no home tenant, and only an administrator may
	// create one. Every other role is bound to the operating school.
	if role == tenancy.RoleAdministrator {
		if claims.Role != tenancy.RoleAdministrator {
			return models.Staff{}, ErrNotPermitted
		}
	} else {
		scope, err := tenancy.ResolveWrite(claims, req.SchoolID)
		if err != nil {
			return models.Staff{}, err
		}
		exists, err := s.schools.Exists(ctx, scope.SchoolID)
		if err != nil {
			return models.Staff{}, err
		}
		if !exists {
			return models.Staff{}, ErrSchoolNotFound
		}
		schoolID := scope.SchoolID
		staff.SchoolID = &schoolID
	}

	if err := s.repo.Create(ctx, &staff); err != nil {
		return models.Staff{}, err
	}

	s.logger.Info().Uint("staff_id", staff.ID).Str("role", staff.Role).Msg("staff member created")
	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "staff.create",
		EntityType: "staff",
		EntityID:   &staff.ID,
		SchoolID:   staff.SchoolID,
		Metadata:   map[string]interface{}{"role": staff.Role},
	})

	return staff, nil
}

func (s *staffService) Update(ctx context.Context, claims tenancy.Claims, id uint, req dto.StaffUpdateRequest) (models.Staff, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Staff{}, err
	}
	if err := guard(claims.Role, tenancy.EntityStaff, tenancy.OpUpdate); err != nil {
		return models.Staff{}, err
	}

	role, err := tenancy.ParseRole(req.Role)
	if err != nil {
		return models.Staff{}, ErrInvalidRole
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Staff{}, ErrStaffNotFound
		}
		return models.Staff{}, err
	}

	// Touching an administrator account is an administrator-only action.
	if existing.Role == string(tenancy.RoleAdministrator) && claims.Role != tenancy.RoleAdministrator {
		return models.Staff{}, ErrNotPermitted
	}

	staff := models.Staff{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Role:     string(role),
		SchoolID: existing.SchoolID,
	}

	if role == tenancy.RoleAdministrator {
		if claims.Role != tenancy.RoleAdministrator {
			return models.Staff{}, ErrNotPermitted
		}
		staff.SchoolID = nil
	} else {
		scope, err := tenancy.ResolveWrite(claims, req.SchoolID)
		if err != nil {
			return models.Staff{}, err
		}
		if existing.SchoolID != nil && *existing.SchoolID != scope.SchoolID {
			return models.Staff{}, ErrWrongSchool
		}
		schoolID := scope.SchoolID
		staff.SchoolID = &schoolID
	}

	if err := s.repo.Update(ctx, &staff); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Staff{}, ErrStaffNotFound
		}
		return models.Staff{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "staff.update",
		EntityType: "staff",
		EntityID:   &id,
		SchoolID:   staff.SchoolID,
	})

	return s.repo.GetByID(ctx, id)
}

func (s *staffService) Delete(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) error {
	if err := guard(claims.Role, tenancy.EntityStaff, tenancy.OpDelete); err != nil {
		return err
	}
	if claims.StaffID == id {
		return ErrCannotDeleteSelf
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStaffNotFound
		}
		return err
	}

	if existing.Role == string(tenancy.RoleAdministrator) {
		if claims.Role != tenancy.RoleAdministrator {
			return ErrNotPermitted
		}
	} else {
		scope, err := tenancy.ResolveWrite(claims, requestedSchool)
		if err != nil {
			return err
		}
		if existing.SchoolID != nil && *existing.SchoolID != scope.SchoolID {
			return ErrWrongSchool
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStaffNotFound
		}
		return err
	}

	s.logger.Info().Uint("staff_id", id).Msg("staff member deleted")
	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "staff.delete",
		EntityType: "staff",
		EntityID:   &id,
		SchoolID:   existing.SchoolID,
	})

	return nil
}
