package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/models"
)

// ClassRepository provides access to class records.
type ClassRepository interface {
	ListBySchool(ctx context.Context, schoolID uint) ([]models.Class, error)
	GetByID(ctx context.Context, id uint) (models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id uint) error
	SchoolIDOf(ctx context.Context, id uint) (uint, error)
}

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository constructs a class repository.
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) ListBySchool(ctx context.Context, schoolID uint) ([]models.Class, error) {
	var classes []models.Class
	if err := r.db.WithContext(ctx).Where("school_id = ?", schoolID).Order("name").Find(&classes).Error; err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *classRepository) GetByID(ctx context.Context, id uint) (models.Class, error) {
	var class models.Class
	if err := r.db.WithContext(ctx).First(&class, id).Error; err != nil {
		return models.Class{}, err
	}

	return class, nil
}

func (r *classRepository) Create(ctx context.Context, class *models.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepository) Update(ctx context.Context, class *models.Class) error {
	result := r.db.WithContext(ctx).Model(&models.Class{}).
		Where("id = ?", class.ID).
		Update("name", class.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *classRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Class{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *classRepository) SchoolIDOf(ctx context.Context, id uint) (uint, error) {
	var class models.Class
	if err := r.db.WithContext(ctx).Select("id", "school_id").First(&class, id).Error; err != nil {
		return 0, err
	}

	return class.SchoolID, nil
}
