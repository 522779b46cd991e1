package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/models"
)

// StaffRepository provides access to staff (actor) records.
type StaffRepository interface {
	ListBySchool(ctx context.Context, schoolID uint) ([]models.Staff, error)
	GetByID(ctx context.Context, id uint) (models.Staff, error)
	GetByRegistration(ctx context.Context, registration string) (models.Staff, error)
	Create(ctx context.Context, staff *models.Staff) error
	Update(ctx context.Context, staff *models.Staff) error
	Delete(ctx context.Context, id uint) error
	SchoolIDOf(ctx context.Context, id uint) (uint, error)
}

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository constructs a staff repository.
func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) ListBySchool(ctx context.Context, schoolID uint) ([]models.Staff, error) {
	var staff []models.Staff
	if err := r.db.WithContext(ctx).Where("school_id = ?", schoolID).Order("name").Find(&staff).Error; err != nil {
		return nil, err
	}

	return staff, nil
}

func (r *staffRepository) GetByID(ctx context.Context, id uint) (models.Staff, error) {
	var staff models.Staff
	if err := r.db.WithContext(ctx).First(&staff, id).Error; err != nil {
		return models.Staff{}, err
	}

	return staff, nil
}

func (r *staffRepository) GetByRegistration(ctx context.Context, registration string) (models.Staff, error) {
	var staff models.Staff
	if err := r.db.WithContext(ctx).Preload("School").Where("registration = ?", registration).First(&staff).Error; err != nil {
		return models.Staff{}, err
	}

	return staff, nil
}

func (r *staffRepository) Create(ctx context.Context, staff *models.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *staffRepository) Update(ctx context.Context, staff *models.Staff) error {
	result := r.db.WithContext(ctx).Model(&models.Staff{}).
		Where("id = ?", staff.ID).
		Updates(map[string]interface{}{
			"name":      staff.Name,
			"email":     staff.Email,
			"role":      staff.Role,
			"school_id": staff.SchoolID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *staffRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Staff{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *staffRepository) SchoolIDOf(ctx context.Context, id uint) (uint, error) {
	var staff models.Staff
	if err := r.db.WithContext(ctx).Select("id", "school_id").First(&staff, id).Error; err != nil {
		return 0, err
	}
	if staff.SchoolID == nil {
		return 0, nil
	}

	return *staff.SchoolID, nil
}
