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

// ActivityService manages graded activities. Teachers may only create and
// update activities assigned to themselves; deleting an activity cascades
// over its evaluations. Bimonthly grades survive an activity delete.
type ActivityService interface {
	List(ctx context.Context, claims tenancy.Claims, requestedSchool uint) ([]models.Activity, error)
	Get(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) (models.Activity, error)
	Create(ctx context.Context, claims tenancy.Claims, req dto.ActivityCreateRequest) (models.Activity, error)
	Update(ctx context.Context, claims tenancy.Claims, id uint, req dto.ActivityUpdateRequest, requestedSchool uint) (models.Activity, error)
	Delete(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) error
}

type activityService struct {
	repo      repository.ActivityRepository
	subjects  repository.SubjectRepository
	staff     repository.StaffRepository
	validator *validator.Validate
	audit     AuditRecorder
	tracer    trace.Tracer
	logger    zerolog.Logger
}

// NewActivityService constructs the activity service.
func NewActivityService(repo repository.ActivityRepository, subjects repository.SubjectRepository, staff repository.StaffRepository, validator *validator.Validate, audit AuditRecorder, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:      repo,
		subjects:  subjects,
		staff:     staff,
		validator: validator,
		audit:     audit,
		tracer:    otel.Tracer("escolar/activity"),
		logger:    logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) List(ctx context.Context, claims tenancy.Claims, requestedSchool uint) ([]models.Activity, error) {
	if err := guard(claims.Role, tenancy.EntityActivity, tenancy.OpRead); err != nil {
		return nil, err
	}

	scope, err := tenancy.Resolve(claims, requestedSchool)
	if err != nil {
		return nil, err
	}
	if scope.EmptyListing {
		return []models.Activity{}, nil
	}

	return s.repo.ListBySchool(ctx, scope.SchoolID)
}

func (s *activityService) Get(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) (models.Activity, error) {
	if err := guard(claims.Role, tenancy.EntityActivity, tenancy.OpRead); err != nil {
		return models.Activity{}, err
	}

	scope, err := tenancy.Resolve(claims, requestedSchool)
	if err != nil {
		return models.Activity{}, err
	}
	if err := ensureSameSchool(ctx, scope, id, s.repo.SchoolIDOf, ErrActivityNotFound); err != nil {
		return models.Activity{}, err
	}

	return s.repo.GetByID(ctx, id)
}

// checkRefs verifies that the subject and teacher both exist and belong to
// the operating school, and that the referenced staff member teaches.
func (s *activityService) checkRefs(ctx context.Context, scope tenancy.Scope, subjectID, teacherID uint) error {
	if err := ensureSameSchool(ctx, scope, subjectID, s.subjects.SchoolIDOf, ErrSubjectNotFound); err != nil {
		return err
	}

	teacher, err := s.staff.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStaffNotFound
		}
		return err
	}
	if teacher.SchoolID == nil || *teacher.SchoolID != scope.SchoolID {
		return ErrWrongSchool
	}
	if teacher.Role != string(tenancy.RoleTeacher) {
		return ErrInvalidRole
	}

	return nil
}

func (s *activityService) Create(ctx context.Context, claims tenancy.Claims, req dto.ActivityCreateRequest) (models.Activity, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Activity{}, err
	}
	if err := guard(claims.Role, tenancy.EntityActivity, tenancy.OpCreate); err != nil {
		return models.Activity{}, err
	}
	if claims.Role == tenancy.RoleTeacher && req.TeacherID != claims.StaffID {
		return models.Activity{}, ErrNotOwnActivity
	}

	scope, err := tenancy.ResolveWrite(claims, req.SchoolID)
	if err != nil {
		return models.Activity{}, err
	}
	if err := s.checkRefs(ctx, scope, req.SubjectID, req.TeacherID); err != nil {
		return models.Activity{}, err
	}

	activity := models.Activity{
		Kind:            req.Kind,
		Location:        req.Location,
		Duration:        req.Duration,
		Dynamics:        req.Dynamics,
		OpenBook:        req.OpenBook,
		CreativeFreedom: req.CreativeFreedom,
		Description:     req.Description,
		MaxScore:        req.MaxScore,
		SubjectID:       req.SubjectID,
		TeacherID:       req.TeacherID,
		SchoolID:        scope.SchoolID,
	}
	if err := s.repo.Create(ctx, &activity); err != nil {
		return models.Activity{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "activity.create",
		EntityType: "activity",
		EntityID:   &activity.ID,
		SchoolID:   &activity.SchoolID,
	})

	return activity, nil
}

func (s *activityService) Update(ctx context.Context, claims tenancy.Claims, id uint, req dto.ActivityUpdateRequest, requestedSchool uint) (models.Activity, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Activity{}, err
	}
	if err := guard(claims.Role, tenancy.EntityActivity, tenancy.OpUpdate); err != nil {
		return models.Activity{}, err
	}

	scope, err := tenancy.ResolveWrite(claims, requestedSchool)
	if err != nil {
		return models.Activity{}, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Activity{}, ErrActivityNotFound
		}
		return models.Activity{}, err
	}
	if existing.SchoolID != scope.SchoolID {
		return models.Activity{}, ErrWrongSchool
	}
	if claims.Role == tenancy.RoleTeacher && (existing.TeacherID != claims.StaffID || req.TeacherID != claims.StaffID) {
		return models.Activity{}, ErrNotOwnActivity
	}

	if err := s.checkRefs(ctx, scope, req.SubjectID, req.TeacherID); err != nil {
		return models.Activity{}, err
	}

	activity := models.Activity{
		ID:              id,
		Kind:            req.Kind,
		Location:        req.Location,
		Duration:        req.Duration,
		Dynamics:        req.Dynamics,
		OpenBook:        req.OpenBook,
		CreativeFreedom: req.CreativeFreedom,
		Description:     req.Description,
		MaxScore:        req.MaxScore,
		SubjectID:       req.SubjectID,
		TeacherID:       req.TeacherID,
	}
	if err := s.repo.Update(ctx, &activity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Activity{}, ErrActivityNotFound
		}
		return models.Activity{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "activity.update",
		EntityType: "activity",
		EntityID:   &id,
		SchoolID:   &scope.SchoolID,
	})

	return s.repo.GetByID(ctx, id)
}

func (s *activityService) Delete(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) error {
	if err := guard(claims.Role, tenancy.EntityActivity, tenancy.OpDelete); err != nil {
		return err
	}

	scope, err := tenancy.ResolveWrite(claims, requestedSchool)
	if err != nil {
		return err
	}
	if err := ensureSameSchool(ctx, scope, id, s.repo.SchoolIDOf, ErrActivityNotFound); err != nil {
		return err
	}

	ctx, span := s.tracer.Start(ctx, "activity.cascade_delete",
		trace.WithAttributes(attribute.Int64("activity.id", int64(id))))
	defer span.End()

	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		span.RecordError(err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrActivityNotFound
		}
		return err
	}

	s.logger.Info().Uint("activity_id", id).Msg("activity and evaluations deleted")
	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "activity.delete",
		EntityType: "activity",
		EntityID:   &id,
		SchoolID:   &scope.SchoolID,
		Metadata:   map[string]interface{}{"cascade": true},
	})

	return nil
}
