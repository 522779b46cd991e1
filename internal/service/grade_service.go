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

// GradeService manages bimonthly grades keyed by (student, subject,
// bimester). SaveBatch validates every subject reference before touching the
// store; one bad item rejects the whole batch.
type GradeService interface {
	ListByStudent(ctx context.Context, claims tenancy.Claims, studentID uint, requestedSchool uint) ([]models.BimonthlyGrade, error)
	Save(ctx context.Context, claims tenancy.Claims, req dto.GradeUpsertRequest) (models.BimonthlyGrade, error)
	SaveBatch(ctx context.Context, claims tenancy.Claims, req dto.GradeBatchRequest) ([]models.BimonthlyGrade, error)
	Delete(ctx context.Context, claims tenancy.Claims, req dto.GradeDeleteRequest) error
}

type gradeService struct {
	repo      repository.GradeRepository
	students  repository.StudentRepository
	subjects  repository.SubjectRepository
	validator *validator.Validate
	audit     AuditRecorder
	tracer    trace.Tracer
	logger    zerolog.Logger
}

// NewGradeService constructs the grade service.
func NewGradeService(repo repository.GradeRepository, students repository.StudentRepository, subjects repository.SubjectRepository, validator *validator.Validate, audit AuditRecorder, logger zerolog.Logger) GradeService {
	return &gradeService{
		repo:      repo,
		students:  students,
		subjects:  subjects,
		validator: validator,
		audit:     audit,
		tracer:    otel.Tracer("escolar/grade"),
		logger:    logger.With().Str("component", "grade_service").Logger(),
	}
}

func (s *gradeService) ListByStudent(ctx context.Context, claims tenancy.Claims, studentID uint, requestedSchool uint) ([]models.BimonthlyGrade, error) {
	if err := guard(claims.Role, tenancy.EntityGrade, tenancy.OpRead); err != nil {
		return nil, err
	}

	scope, err := tenancy.Resolve(claims, requestedSchool)
	if err != nil {
		return nil, err
	}
	if scope.EmptyListing {
		return []models.BimonthlyGrade{}, nil
	}
	if err := ensureSameSchool(ctx, scope, studentID, s.students.SchoolIDOf, ErrStudentNotFound); err != nil {
		return nil, err
	}

	return s.repo.ListByStudent(ctx, studentID)
}

func (s *gradeService) Save(ctx context.Context, claims tenancy.Claims, req dto.GradeUpsertRequest) (models.BimonthlyGrade, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.BimonthlyGrade{}, err
	}
	if err := guard(claims.Role, tenancy.EntityGrade, tenancy.OpCreate); err != nil {
		return models.BimonthlyGrade{}, err
	}

	scope, err := tenancy.ResolveWrite(claims, req.SchoolID)
	if err != nil {
		return models.BimonthlyGrade{}, err
	}
	if err := ensureSameSchool(ctx, scope, req.StudentID, s.students.SchoolIDOf, ErrStudentNotFound); err != nil {
		return models.BimonthlyGrade{}, err
	}
	if err := ensureSameSchool(ctx, scope, req.SubjectID, s.subjects.SchoolIDOf, ErrSubjectNotFound); err != nil {
		return models.BimonthlyGrade{}, err
	}

	grade := models.BimonthlyGrade{
		StudentID:        req.StudentID,
		SubjectID:        req.SubjectID,
		Bimester:         req.Bimester,
		Score:            req.Score,
		RemediationScore: req.RemediationScore,
	}
	if err := s.repo.Upsert(ctx, &grade); err != nil {
		return models.BimonthlyGrade{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "grade.save",
		EntityType: "grade",
		EntityID:   &grade.ID,
		SchoolID:   &scope.SchoolID,
		Metadata: map[string]interface{}{
			"student_id": req.StudentID,
			"subject_id": req.SubjectID,
			"bimester":   req.Bimester,
		},
	})

	return grade, nil
}

func (s *gradeService) SaveBatch(ctx context.Context, claims tenancy.Claims, req dto.GradeBatchRequest) ([]models.BimonthlyGrade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if err := guard(claims.Role, tenancy.EntityGrade, tenancy.OpCreate); err != nil {
		return nil, err
	}

	scope, err := tenancy.ResolveWrite(claims, req.SchoolID)
	if err != nil {
		return nil, err
	}
	if err := ensureSameSchool(ctx, scope, req.StudentID, s.students.SchoolIDOf, ErrStudentNotFound); err != nil {
		return nil, err
	}

	// Every reference is checked before any row is written, so a bad item
	// rejects the batch without partial effects.
	for _, item := range req.Items {
		if err := ensureSameSchool(ctx, scope, item.SubjectID, s.subjects.SchoolIDOf, ErrSubjectNotFound); err != nil {
			return nil, err
		}
	}

	grades := make([]models.BimonthlyGrade, 0, len(req.Items))
	for _, item := range req.Items {
		grades = append(grades, models.BimonthlyGrade{
			StudentID:        req.StudentID,
			SubjectID:        item.SubjectID,
			Bimester:         item.Bimester,
			Score:            item.Score,
			RemediationScore: item.RemediationScore,
		})
	}

	ctx, span := s.tracer.Start(ctx, "grade.upsert_batch",
		trace.WithAttributes(
			attribute.Int64("student.id", int64(req.StudentID)),
			attribute.Int("batch.size", len(grades)),
		))
	defer span.End()

	if err := s.repo.UpsertBatch(ctx, grades); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.logger.Info().Uint("student_id", req.StudentID).Int("count", len(grades)).Msg("grade batch saved")
	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "grade.save_batch",
		EntityType: "grade",
		EntityID:   &req.StudentID,
		SchoolID:   &scope.SchoolID,
		Metadata:   map[string]interface{}{"count": len(grades)},
	})

	return grades, nil
}

func (s *gradeService) Delete(ctx context.Context, claims tenancy.Claims, req dto.GradeDeleteRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}
	if err := guard(claims.Role, tenancy.EntityGrade, tenancy.OpDelete); err != nil {
		return err
	}

	scope, err := tenancy.ResolveWrite(claims, req.SchoolID)
	if err != nil {
		return err
	}
	if err := ensureSameSchool(ctx, scope, req.StudentID, s.students.SchoolIDOf, ErrStudentNotFound); err != nil {
		return err
	}

	if err := s.repo.DeleteByKey(ctx, req.StudentID, req.SubjectID, req.Bimester); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGradeNotFound
		}
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    claims.StaffID,
		ActorRole:  claims.Role,
		Action:     "grade.delete",
		EntityType: "grade",
		SchoolID:   &scope.SchoolID,
		Metadata: map[string]interface{}{
			"student_id": req.StudentID,
			"subject_id": req.SubjectID,
			"bimester":   req.Bimester,
		},
	})

	return nil
}
