package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/models"
)

func TestActivityRepositoryDeleteCascadeRemovesEvaluationsOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityRepository(db)

	school := seedSchool(t, db, "Escola Azul")
	class := seedClass(t, db, school.ID, "5A")
	subject := seedSubject(t, db, school.ID, "Math")
	teacher := seedTeacher(t, db, school.ID, "t-100")
	student := seedStudent(t, db, school.ID, class.ID, "s-100")
	activity := seedActivity(t, db, school.ID, subject.ID, teacher.ID, 10)

	require.NoError(t, db.Create(&models.Evaluation{StudentID: student.ID, ActivityID: activity.ID, TeacherID: teacher.ID, Score: 9}).Error)
	require.NoError(t, db.Create(&models.BimonthlyGrade{StudentID: student.ID, SubjectID: subject.ID, Bimester: 1, Score: 8}).Error)

	require.NoError(t, repo.DeleteCascade(context.Background(), activity.ID))

	var evalCount int64
	require.NoError(t, db.Model(&models.Evaluation{}).Where("activity_id = ?", activity.ID).Count(&evalCount).Error)
	require.Zero(t, evalCount)

	// Bimonthly grades hang off the subject, not the activity, and must
	// survive the cascade.
	var gradeCount int64
	require.NoError(t, db.Model(&models.BimonthlyGrade{}).Where("student_id = ?", student.ID).Count(&gradeCount).Error)
	require.Equal(t, int64(1), gradeCount)

	_, err := repo.GetByID(context.Background(), activity.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestActivityRepositoryDeleteCascadeMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityRepository(db)

	err := repo.DeleteCascade(context.Background(), 4242)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
