package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/models"
)

// ConditionRepository provides access to per-student condition records.
type ConditionRepository interface {
	ListByStudent(ctx context.Context, studentID uint) ([]models.Condition, error)
	GetByID(ctx context.Context, id uint) (models.Condition, error)
	Create(ctx context.Context, condition *models.Condition) error
	Delete(ctx context.Context, id uint) error
}

type conditionRepository struct {
	db *gorm.DB
}

// NewConditionRepository constructs a condition repository.
func NewConditionRepository(db *gorm.DB) ConditionRepository {
	return &conditionRepository{db: db}
}

func (r *conditionRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Condition, error) {
	var conditions []models.Condition
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("name").
		Find(&conditions).Error
	if err != nil {
		return nil, err
	}

	return conditions, nil
}

func (r *conditionRepository) GetByID(ctx context.Context, id uint) (models.Condition, error) {
	var condition models.Condition
	if err := r.db.WithContext(ctx).First(&condition, id).Error; err != nil {
		return models.Condition{}, err
	}

	return condition, nil
}

// Create surfaces gorm.ErrDuplicatedKey when the student already has a
// condition with the same name.
func (r *conditionRepository) Create(ctx context.Context, condition *models.Condition) error {
	return r.db.WithContext(ctx).Create(condition).Error
}

func (r *conditionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Condition{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
