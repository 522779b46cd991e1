package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/models"
)

// ObservationRepository provides access to the append-only observation log.
type ObservationRepository interface {
	ListByStudent(ctx context.Context, studentID uint) ([]models.Observation, error)
	Create(ctx context.Context, observation *models.Observation) error
}

type observationRepository struct {
	db *gorm.DB
}

// NewObservationRepository constructs an observation repository.
func NewObservationRepository(db *gorm.DB) ObservationRepository {
	return &observationRepository{db: db}
}

func (r *observationRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Observation, error) {
	var observations []models.Observation
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&observations).Error
	if err != nil {
		return nil, err
	}

	return observations, nil
}

func (r *observationRepository) Create(ctx context.Context, observation *models.Observation) error {
	return r.db.WithContext(ctx).Create(observation).Error
}
