package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/models"
)

func TestStudentRepositoryDeleteCascadeRemovesDependents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	school := seedSchool(t, db, "Escola Azul")
	class := seedClass(t, db, school.ID, "5A")
	subject := seedSubject(t, db, school.ID, "Math")
	teacher := seedTeacher(t, db, school.ID, "t-100")
	student := seedStudent(t, db, school.ID, class.ID, "s-100")
	activity := seedActivity(t, db, school.ID, subject.ID, teacher.ID, 10)

	require.NoError(t, db.Create(&models.Condition{StudentID: student.ID, Name: "ADHD", ProofStatus: "reported"}).Error)
	require.NoError(t, db.Create(&models.Evaluation{StudentID: student.ID, ActivityID: activity.ID, TeacherID: teacher.ID, Score: 7}).Error)
	require.NoError(t, db.Create(&models.Observation{StudentID: student.ID, TeacherID: teacher.ID, Text: "struggles with fractions"}).Error)
	require.NoError(t, db.Create(&models.BimonthlyGrade{StudentID: student.ID, SubjectID: subject.ID, Bimester: 1, Score: 6.5}).Error)
	require.NoError(t, db.Create(&models.Insight{StudentID: student.ID, Text: "generated text"}).Error)

	require.NoError(t, repo.DeleteCascade(context.Background(), student.ID))

	for _, model := range []interface{}{
		&models.Condition{},
		&models.Evaluation{},
		&models.Observation{},
		&models.BimonthlyGrade{},
		&models.Insight{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Where("student_id = ?", student.ID).Count(&count).Error)
		require.Zero(t, count)
	}

	_, err := repo.GetByID(context.Background(), student.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStudentRepositoryDeleteCascadeRollsBackOnFailure(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	school := seedSchool(t, db, "Escola Azul")
	class := seedClass(t, db, school.ID, "5A")
	subject := seedSubject(t, db, school.ID, "Math")
	teacher := seedTeacher(t, db, school.ID, "t-100")
	student := seedStudent(t, db, school.ID, class.ID, "s-100")
	activity := seedActivity(t, db, school.ID, subject.ID, teacher.ID, 10)

	require.NoError(t, db.Create(&models.Condition{StudentID: student.ID, Name: "ADHD", ProofStatus: "reported"}).Error)
	require.NoError(t, db.Create(&models.Evaluation{StudentID: student.ID, ActivityID: activity.ID, TeacherID: teacher.ID, Score: 7}).Error)
	require.NoError(t, db.Create(&models.Insight{StudentID: student.ID, Text: "generated text"}).Error)

	// Fail the last dependent delete; the earlier deletes in the same
	// transaction must be rolled back with it.
	boom := errors.New("storage offline")
	require.NoError(t, db.Callback().Delete().Before("gorm:delete").Register("fail_insight_delete", func(tx *gorm.DB) {
		if tx.Statement.Table == "insights" {
			tx.AddError(boom)
		}
	}))
	t.Cleanup(func() {
		require.NoError(t, db.Callback().Delete().Remove("fail_insight_delete"))
	})

	err := repo.DeleteCascade(context.Background(), student.ID)
	require.ErrorIs(t, err, boom)

	for _, model := range []interface{}{
		&models.Condition{},
		&models.Evaluation{},
		&models.Insight{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Where("student_id = ?", student.ID).Count(&count).Error)
		require.EqualValues(t, 1, count, "dependent rows must survive a failed cascade")
	}

	_, err = repo.GetByID(context.Background(), student.ID)
	require.NoError(t, err)
}

func TestStudentRepositoryDeleteCascadeMissingStudent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	err := repo.DeleteCascade(context.Background(), 9999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStudentRepositoryGetBundle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	school := seedSchool(t, db, "Escola Verde")
	class := seedClass(t, db, school.ID, "6B")
	subject := seedSubject(t, db, school.ID, "History")
	teacher := seedTeacher(t, db, school.ID, "t-200")
	student := seedStudent(t, db, school.ID, class.ID, "s-200")
	activity := seedActivity(t, db, school.ID, subject.ID, teacher.ID, 10)

	require.NoError(t, db.Create(&models.Evaluation{StudentID: student.ID, ActivityID: activity.ID, TeacherID: teacher.ID, Score: 8}).Error)
	require.NoError(t, db.Create(&models.BimonthlyGrade{StudentID: student.ID, SubjectID: subject.ID, Bimester: 2, Score: 7}).Error)
	require.NoError(t, db.Create(&models.Observation{StudentID: student.ID, TeacherID: teacher.ID, Text: "participates well"}).Error)

	bundle, err := repo.GetBundle(context.Background(), student.ID)
	require.NoError(t, err)
	require.Equal(t, student.ID, bundle.Student.ID)
	require.Len(t, bundle.Evaluations, 1)
	require.Equal(t, activity.ID, bundle.Evaluations[0].Activity.ID)
	require.Len(t, bundle.Grades, 1)
	require.Len(t, bundle.Observations, 1)
	require.Empty(t, bundle.Insights)
}

func TestStudentRepositoryListScopedToSchool(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	blue := seedSchool(t, db, "Escola Azul")
	green := seedSchool(t, db, "Escola Verde")
	blueClass := seedClass(t, db, blue.ID, "5A")
	greenClass := seedClass(t, db, green.ID, "5A")
	seedStudent(t, db, blue.ID, blueClass.ID, "s-1")
	seedStudent(t, db, green.ID, greenClass.ID, "s-2")

	students, err := repo.ListBySchool(context.Background(), blue.ID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.Equal(t, blue.ID, students[0].SchoolID)
}
