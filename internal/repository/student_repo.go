package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/models"
)

// StudentBundle aggregates everything known about a student. It feeds the
// insight generator and the full-data endpoint.
type StudentBundle struct {
	Student      models.Student          `json:"student"`
	Evaluations  []models.Evaluation     `json:"evaluations"`
	Grades       []models.BimonthlyGrade `json:"grades"`
	Observations []models.Observation    `json:"observations"`
	Insights     []models.Insight        `json:"insights"`
}

// StudentRepository provides access to student records, including the
// transactional cascade delete for the aggregate root.
type StudentRepository interface {
	ListBySchool(ctx context.Context, schoolID uint) ([]models.Student, error)
	GetByID(ctx context.Context, id uint) (models.Student, error)
	GetBundle(ctx context.Context, id uint) (StudentBundle, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	DeleteCascade(ctx context.Context, id uint) error
	SchoolIDOf(ctx context.Context, id uint) (uint, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) ListBySchool(ctx context.Context, schoolID uint) ([]models.Student, error) {
	var students []models.Student
	err := r.db.WithContext(ctx).
		Preload("Class").
		Preload("Conditions").
		Where("school_id = ?", schoolID).
		Order("name").
		Find(&students).Error
	if err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Preload("Class").Preload("Conditions").First(&student, id).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) GetBundle(ctx context.Context, id uint) (StudentBundle, error) {
	student, err := r.GetByID(ctx, id)
	if err != nil {
		return StudentBundle{}, err
	}

	bundle := StudentBundle{Student: student}
	db := r.db.WithContext(ctx)

	if err := db.Preload("Activity").Preload("Activity.Subject").Where("student_id = ?", id).Find(&bundle.Evaluations).Error; err != nil {
		return StudentBundle{}, err
	}
	if err := db.Preload("Subject").Where("student_id = ?", id).Find(&bundle.Grades).Error; err != nil {
		return StudentBundle{}, err
	}
	if err := db.Where("student_id = ?", id).Order("created_at DESC").Find(&bundle.Observations).Error; err != nil {
		return StudentBundle{}, err
	}
	if err := db.Where("student_id = ?", id).Order("generated_at DESC").Find(&bundle.Insights).Error; err != nil {
		return StudentBundle{}, err
	}

	return bundle, nil
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	result := r.db.WithContext(ctx).Model(&models.Student{}).
		Where("id = ?", student.ID).
		Updates(map[string]interface{}{
			"name":         student.Name,
			"registration": student.Registration,
			"age":          student.Age,
			"class_id":     student.ClassID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DeleteCascade removes every dependent row and then the student itself in a
// single transaction, so a failure partway leaves no orphaned records.
func (r *studentRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Condition{},
			&models.Evaluation{},
			&models.Observation{},
			&models.BimonthlyGrade{},
			&models.Insight{},
		} {
			if err := tx.Where("student_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&models.Student{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

func (r *studentRepository) SchoolIDOf(ctx context.Context, id uint) (uint, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Select("id", "school_id").First(&student, id).Error; err != nil {
		return 0, err
	}

	return student.SchoolID, nil
}
