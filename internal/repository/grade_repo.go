package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/escolalab/escolar-api/internal/models"
)

// GradeRepository provides access to bimonthly grades. Writes go through
// upserts keyed on the (student, subject, bimester) triple; the batch variant
// applies all rows in one transaction.
type GradeRepository interface {
	ListByStudent(ctx context.Context, studentID uint) ([]models.BimonthlyGrade, error)
	Upsert(ctx context.Context, grade *models.BimonthlyGrade) error
	UpsertBatch(ctx context.Context, grades []models.BimonthlyGrade) error
	DeleteByKey(ctx context.Context, studentID, subjectID uint, bimester int) error
}

type gradeRepository struct {
	db *gorm.DB
}

// NewGradeRepository constructs a grade repository.
func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.BimonthlyGrade, error) {
	var grades []models.BimonthlyGrade
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("student_id = ?", studentID).
		Order("subject_id, bimester").
		Find(&grades).Error
	if err != nil {
		return nil, err
	}

	return grades, nil
}

func gradeConflict() clause.OnConflict {
	return clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "subject_id"}, {Name: "bimester"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"score", "remediation_score", "updated_at",
		}),
	}
}

func (r *gradeRepository) Upsert(ctx context.Context, grade *models.BimonthlyGrade) error {
	return r.db.WithContext(ctx).Clauses(gradeConflict()).Create(grade).Error
}

// UpsertBatch applies every grade inside one transaction. Either all rows
// land or none do.
func (r *gradeRepository) UpsertBatch(ctx context.Context, grades []models.BimonthlyGrade) error {
	if len(grades) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range grades {
			if err := tx.Clauses(gradeConflict()).Create(&grades[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *gradeRepository) DeleteByKey(ctx context.Context, studentID, subjectID uint, bimester int) error {
	result := r.db.WithContext(ctx).
		Where("student_id = ? AND subject_id = ? AND bimester = ?", studentID, subjectID, bimester).
		Delete(&models.BimonthlyGrade{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
