package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/models"
)

// InsightRepository provides access to the append-only insight history.
type InsightRepository interface {
	ListByStudent(ctx context.Context, studentID uint) ([]models.Insight, error)
	Create(ctx context.Context, insight *models.Insight) error
}

type insightRepository struct {
	db *gorm.DB
}

// NewInsightRepository constructs an insight repository.
func NewInsightRepository(db *gorm.DB) InsightRepository {
	return &insightRepository{db: db}
}

func (r *insightRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Insight, error) {
	var insights []models.Insight
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("generated_at DESC").
		Find(&insights).Error
	if err != nil {
		return nil, err
	}

	return insights, nil
}

func (r *insightRepository) Create(ctx context.Context, insight *models.Insight) error {
	return r.db.WithContext(ctx).Create(insight).Error
}
