package service

import (
	"context"
	"errors"
	"time"

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

// EvaluationService manages gradings of students on activities. Saving is an
// upsert on the (student, activity) pair; the score may never exceed the
// activity's max score.
type EvaluationService interface {
	ListByStudent(ctx context.Context, claims tenancy.Claims, studentID uint, requestedSchool uint) ([]models.Evaluation, error)
	Save(ctx context.Context, claims tenancy.Claims, req dto.EvaluationUpsertRequest) (models.Evaluation, error)
	Delete(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) error
}

type evaluationService struct {
	repo       repository.EvaluationRepository
	students   repository.StudentRepository
	activities repository.ActivityRepository
	validator  *validator.Validate
	audit      AuditRecorder
	tracer     trace.Tracer
	logger     zerolog.Logger
}

// NewEvaluationService constructs the evaluation service.
func NewEvaluationService(repo repository.EvaluationRepository, students repository.StudentRepository, activities repository.ActivityRepository, validator *validator.Validate, audit AuditRecorder, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		repo:       repo,
		students:   students,
		activities: activities,
		validator:  validator,
		audit:      audit,
		tracer:     otel.Tracer("escolar/evaluation"),
		logger:     logger.With().Str("component", "evaluation_service").Logger(),
	}
}

func (s *evaluationService) ListByStudent(ctx context.Context, claims tenancy.Claims, studentID uint, requestedSchool uint) ([]models.Evaluation, error) {
	if err := guard(claims.Role, tenancy.EntityEvaluation, tenancy.OpRead); err != nil {
		return nil, err
	}

	scope, err := tenancy.Resolve(claims, requestedSchool)
	if err != nil {
		return nil, err
	}
	if scope.EmptyListing {
		return []models.Evaluation{}, nil
	}
	if err := ensureSameSchool(ctx, scope, studentID, s.students.SchoolIDOf, ErrStudentNotFound); err != nil {
		return nil, err
	}

	return s.repo.ListByStudent(ctx, studentID)
}

func (s *evaluationService) Save(ctx context.Context, claims tenancy.Claims, req dto.EvaluationUpsertRequest) (models.Evaluation, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Evaluation{}, err
	}
	if err := guard(claims.Role, tenancy.EntityEvaluation, tenancy.OpCreate); err != nil {
		return models.Evaluation{}, err
	}

	scope, err := tenancy.ResolveWrite(claims, req.SchoolID)
	if err != nil {
		return models.Evaluation{}, err
	}
	if err := ensureSameSchool(ctx, scope, req.StudentID, s.students.SchoolIDOf, ErrStudentNotFound); err != nil {
		return models.Evaluation{}, err
	}

	activity, err := s.activities.GetByID(ctx, req.ActivityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Evaluation{}, ErrActivityNotFound
		}
		return models.Evaluation{}, err
	}
	if activity.SchoolID != scope.SchoolID {
		return models.Evaluation{}, ErrWrongSchool
	}
	if claims.Role == tenancy.RoleTeacher && activity.TeacherID != claims.StaffID {
		return models.Evaluation{}, ErrNotOwnActivity
	}
	if req.Score > activity.MaxScore {
		return models.Evaluation{}, ErrScoreExceedsMax
	}

	ctx, span := s.tracer.Start(ctx, "evaluation.upsert",
		trace.WithAttributes(
			attribute.Int64("student.id", int64(req.StudentID)),
			attribute.Int64("activity.id", int64(req.ActivityID)),
		))
	defer span.End()

	eval := models.Evaluation{
		StudentID:   req.StudentID,
		ActivityID:  req.ActivityID,
		TeacherID:   claims.StaffID,
		Score:       req.Score,
		Feedback:    req.Feedback,
		OnTime:      req.OnTime,
		EvaluatedAt: time.Now(),
	}
	if err := s.repo.Upsert(ctx, &eval); err != nil {
		span.RecordError(err)
		return models.Evaluation{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "evaluation.save",
		EntityType: "evaluation",
		EntityID:   &eval.ID,
		SchoolID:   &scope.SchoolID,
		Metadata: map[string]interface{}{
			"student_id":  req.StudentID,
			"activity_id": req.ActivityID,
		},
	})

	return eval, nil
}

func (s *evaluationService) Delete(ctx context.Context, claims tenancy.Claims, id uint, requestedSchool uint) error {
	if err := guard(claims.Role, tenancy.EntityEvaluation, tenancy.OpDelete); err != nil {
		return err
	}

	scope, err := tenancy.ResolveWrite(claims, requestedSchool)
	if err != nil {
		return err
	}

	eval, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEvaluationNotFound
		}
		return err
	}
	if err := ensureSameSchool(ctx, scope, eval.StudentID, s.students.SchoolIDOf, ErrStudentNotFound); err != nil {
		return err
	}
	if claims.Role == tenancy.RoleTeacher && eval.TeacherID != claims.StaffID {
		return ErrNotOwnActivity
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEvaluationNotFound
		}
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "evaluation.delete",
		EntityType: "evaluation",
		EntityID:   &id,
		SchoolID:   &scope.SchoolID,
	})

	return nil
}
