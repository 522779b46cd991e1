package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/escolalab/escolar-api/internal/models"
)

// EvaluationRepository provides access to evaluation records. Writes go
// through an upsert keyed on the (student, activity) pair.
type EvaluationRepository interface {
	ListByStudent(ctx context.Context, studentID uint) ([]models.Evaluation, error)
	ListByActivity(ctx context.Context, activityID uint) ([]models.Evaluation, error)
	GetByID(ctx context.Context, id uint) (models.Evaluation, error)
	Upsert(ctx context.Context, eval *models.Evaluation) error
	Delete(ctx context.Context, id uint) error
	StudentIDOf(ctx context.Context, id uint) (uint, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository constructs an evaluation repository.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Evaluation, error) {
	var evals []models.Evaluation
	err := r.db.WithContext(ctx).
		Preload("Activity").
		Preload("Activity.Subject").
		Where("student_id = ?", studentID).
		Order("evaluated_at DESC").
		Find(&evals).Error
	if err != nil {
		return nil, err
	}

	return evals, nil
}

func (r *evaluationRepository) ListByActivity(ctx context.Context, activityID uint) ([]models.Evaluation, error) {
	var evals []models.Evaluation
	err := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("evaluated_at DESC").
		Find(&evals).Error
	if err != nil {
		return nil, err
	}

	return evals, nil
}

func (r *evaluationRepository) GetByID(ctx context.Context, id uint) (models.Evaluation, error) {
	var eval models.Evaluation
	if err := r.db.WithContext(ctx).First(&eval, id).Error; err != nil {
		return models.Evaluation{}, err
	}

	return eval, nil
}

// Upsert inserts the evaluation or, when one already exists for the same
// (student, activity) pair, overwrites its grading fields in place.
func (r *evaluationRepository) Upsert(ctx context.Context, eval *models.Evaluation) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "activity_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"teacher_id", "score", "feedback", "on_time", "evaluated_at", "updated_at",
		}),
	}).Create(eval).Error
}

func (r *evaluationRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Evaluation{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *evaluationRepository) StudentIDOf(ctx context.Context, id uint) (uint, error) {
	var eval models.Evaluation
	if err := r.db.WithContext(ctx).Select("id", "student_id").First(&eval, id).Error; err != nil {
		return 0, err
	}

	return eval.StudentID, nil
}
