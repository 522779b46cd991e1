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

// ConditionSuggestion is a common condition name offered to clients. The
// attached name stays free text; suggestions are a convenience only.
type ConditionSuggestion struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ConditionService manages conditions attached to students.
type ConditionService interface {
	Suggestions() []ConditionSuggestion
	ListByStudent(ctx context.Context, claims tenancy.Claims, studentID uint, requestedSchool uint) ([]models.Condition, error)
	Create(ctx context.Context, claims tenancy.Claims, req dto.ConditionCreateRequest) (models.Condition, error)
	Delete(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) error
}

type conditionService struct {
	repo      repository.ConditionRepository
	students  repository.StudentRepository
	validator *validator.Validate
	audit     AuditRecorder
	logger    zerolog.Logger
}

// NewConditionService constructs the condition service.
func NewConditionService(repo repository.ConditionRepository, students repository.StudentRepository, validator *validator.Validate, audit AuditRecorder, logger zerolog.Logger) ConditionService {
	return &conditionService{
		repo:      repo,
		students:  students,
		validator: validator,
		audit:     audit,
		logger:    logger.With().Str("component", "condition_service").Logger(),
	}
}

func (s *conditionService) Suggestions() []ConditionSuggestion {
	return []ConditionSuggestion{
		{ID: "sug_adhd", Name: "ADHD"},
		{ID: "sug_asd", Name: "Autism spectrum"},
		{ID: "sug_dyslexia", Name: "Dyslexia"},
		{ID: "sug_anxiety", Name: "Anxiety disorder"},
		{ID: "sug_depression", Name: "Depression"},
	}
}

func (s *conditionService) ListByStudent(ctx context.Context, claims tenancy.Claims, studentID uint, requestedSchool uint) ([]models.Condition, error) {
	if err := guard(claims.Role, tenancy.EntityCondition, tenancy.OpRead); err != nil {
		return nil, err
	}

	scope, err := tenancy.Resolve(claims, requestedSchool)
	if err != nil {
		return nil, err
	}
	if scope.EmptyListing {
		return []models.Condition{}, nil
	}
	if err := ensureSameSchool(ctx, scope, studentID, s.students.SchoolIDOf, ErrStudentNotFound); err != nil {
		return nil, err
	}

	return s.repo.ListByStudent(ctx, studentID)
}

func (s *conditionService) Create(ctx context.Context, claims tenancy.Claims, req dto.ConditionCreateRequest) (models.Condition, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Condition{}, err
	}
	if err := guard(claims.Role, tenancy.EntityCondition, tenancy.OpCreate); err != nil {
		return models.Condition{}, err
	}

	scope, err := tenancy.ResolveWrite(claims, req.SchoolID)
	if err != nil {
		return models.Condition{}, err
	}
	if err := ensureSameSchool(ctx, scope, req.StudentID, s.students.SchoolIDOf, ErrStudentNotFound); err != nil {
		return models.Condition{}, err
	}

	condition := models.Condition{
		StudentID:   req.StudentID,
		Name:        req.Name,
		ProofStatus: req.ProofStatus,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, &condition); err != nil {
		return models.Condition{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "condition.create",
		EntityType: "condition",
		EntityID:   &condition.ID,
		SchoolID:   &scope.SchoolID,
		Metadata:   map[string]interface{}{"student_id": req.StudentID},
	})

	return condition, nil
}

func (s *conditionService) Delete(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) error {
	if err := guard(claims.Role, tenancy.EntityCondition, tenancy.OpDelete); err != nil {
		return err
	}

	scope, err := tenancy.ResolveWrite(claims, requestedSchool)
	if err != nil {
		return err
	}

	condition, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConditionNotFound
		}
		return err
	}
	if err := ensureSameSchool(ctx, scope, condition.StudentID, s.students.SchoolIDOf, ErrStudentNotFound); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConditionNotFound
		}
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "condition.delete",
		EntityType: "condition",
		EntityID:   &id,
		SchoolID:   &scope.SchoolID,
	})

	return nil
}
