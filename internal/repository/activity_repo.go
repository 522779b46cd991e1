package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/models"
)

// ActivityRepository provides access to activity records, including the
// transactional cascade delete of dependent evaluations.
type ActivityRepository interface {
	ListBySchool(ctx context.Context, schoolID uint) ([]models.Activity, error)
	GetByID(ctx context.Context, id uint) (models.Activity, error)
	Create(ctx context.Context, activity *models.Activity) error
	Update(ctx context.Context, activity *models.Activity) error
	DeleteCascade(ctx context.Context, id uint) error
	SchoolIDOf(ctx context.Context, id uint) (uint, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository constructs an activity repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) ListBySchool(ctx context.Context, schoolID uint) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Teacher").
		Where("school_id = ?", schoolID).
		Order("created_at DESC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}

	return activities, nil
}

func (r *activityRepository) GetByID(ctx context.Context, id uint) (models.Activity, error) {
	var activity models.Activity
	if err := r.db.WithContext(ctx).First(&activity, id).Error; err != nil {
		return models.Activity{}, err
	}

	return activity, nil
}

func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) Update(ctx context.Context, activity *models.Activity) error {
	result := r.db.WithContext(ctx).Model(&models.Activity{}).
		Where("id = ?", activity.ID).
		Updates(map[string]interface{}{
			"kind":             activity.Kind,
			"location":         activity.Location,
			"duration":         activity.Duration,
			"dynamics":         activity.Dynamics,
			"open_book":        activity.OpenBook,
			"creative_freedom": activity.CreativeFreedom,
			"description":      activity.Description,
			"max_score":        activity.MaxScore,
			"subject_id":       activity.SubjectID,
			"teacher_id":       activity.TeacherID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DeleteCascade removes the activity's evaluations and then the activity in
// one transaction. Bimonthly grades reference subjects, not activities, and
// are deliberately left untouched.
func (r *activityRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("activity_id = ?", id).Delete(&models.Evaluation{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Activity{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

func (r *activityRepository) SchoolIDOf(ctx context.Context, id uint) (uint, error) {
	var activity models.Activity
	if err := r.db.WithContext(ctx).Select("id", "school_id").First(&activity, id).Error; err != nil {
		return 0, err
	}

	return activity.SchoolID, nil
}
