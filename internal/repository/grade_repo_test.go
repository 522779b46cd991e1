package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/models"
)

func TestGradeRepositoryUpsertByNaturalKey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGradeRepository(db)

	school := seedSchool(t, db, "Escola Azul")
	class := seedClass(t, db, school.ID, "5A")
	subject := seedSubject(t, db, school.ID, "Math")
	student := seedStudent(t, db, school.ID, class.ID, "s-100")

	first := models.BimonthlyGrade{StudentID: student.ID, SubjectID: subject.ID, Bimester: 1, Score: 5}
	require.NoError(t, repo.Upsert(context.Background(), &first))

	remediation := 7.5
	second := models.BimonthlyGrade{StudentID: student.ID, SubjectID: subject.ID, Bimester: 1, Score: 6, RemediationScore: &remediation}
	require.NoError(t, repo.Upsert(context.Background(), &second))

	grades, err := repo.ListByStudent(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, grades, 1)
	require.Equal(t, float64(6), grades[0].Score)
	require.NotNil(t, grades[0].RemediationScore)
	require.Equal(t, remediation, *grades[0].RemediationScore)
}

func TestGradeRepositoryUpsertBatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGradeRepository(db)

	school := seedSchool(t, db, "Escola Azul")
	class := seedClass(t, db, school.ID, "5A")
	math := seedSubject(t, db, school.ID, "Math")
	history := seedSubject(t, db, school.ID, "History")
	student := seedStudent(t, db, school.ID, class.ID, "s-100")

	require.NoError(t, repo.Upsert(context.Background(), &models.BimonthlyGrade{
		StudentID: student.ID, SubjectID: math.ID, Bimester: 1, Score: 4,
	}))

	batch := []models.BimonthlyGrade{
		{StudentID: student.ID, SubjectID: math.ID, Bimester: 1, Score: 7},
		{StudentID: student.ID, SubjectID: math.ID, Bimester: 2, Score: 8},
		{StudentID: student.ID, SubjectID: history.ID, Bimester: 1, Score: 9},
	}
	require.NoError(t, repo.UpsertBatch(context.Background(), batch))

	grades, err := repo.ListByStudent(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, grades, 3)
	require.Equal(t, float64(7), grades[0].Score, "existing row must be overwritten in place")
}

func TestGradeRepositoryUpsertBatchRollsBackOnFailure(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGradeRepository(db)

	school := seedSchool(t, db, "Escola Azul")
	class := seedClass(t, db, school.ID, "5A")
	math := seedSubject(t, db, school.ID, "Math")
	history := seedSubject(t, db, school.ID, "History")
	student := seedStudent(t, db, school.ID, class.ID, "s-100")

	require.NoError(t, repo.Upsert(context.Background(), &models.BimonthlyGrade{
		StudentID: student.ID, SubjectID: math.ID, Bimester: 1, Score: 4,
	}))

	// Fail the second row of the batch; the first row already overwrote the
	// seeded grade inside the transaction, so the rollback must restore it.
	boom := errors.New("storage offline")
	writes := 0
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("fail_second_grade", func(tx *gorm.DB) {
		if tx.Statement.Table != "bimonthly_grades" {
			return
		}
		writes++
		if writes == 2 {
			tx.AddError(boom)
		}
	}))
	t.Cleanup(func() {
		require.NoError(t, db.Callback().Create().Remove("fail_second_grade"))
	})

	err := repo.UpsertBatch(context.Background(), []models.BimonthlyGrade{
		{StudentID: student.ID, SubjectID: math.ID, Bimester: 1, Score: 9},
		{StudentID: student.ID, SubjectID: history.ID, Bimester: 1, Score: 8},
	})
	require.ErrorIs(t, err, boom)

	grades, listErr := repo.ListByStudent(context.Background(), student.ID)
	require.NoError(t, listErr)
	require.Len(t, grades, 1)
	require.Equal(t, float64(4), grades[0].Score, "the pre-batch score must survive the rollback")
}

func TestGradeRepositoryDeleteByKey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGradeRepository(db)

	school := seedSchool(t, db, "Escola Azul")
	class := seedClass(t, db, school.ID, "5A")
	subject := seedSubject(t, db, school.ID, "Math")
	student := seedStudent(t, db, school.ID, class.ID, "s-100")

	require.NoError(t, repo.Upsert(context.Background(), &models.BimonthlyGrade{
		StudentID: student.ID, SubjectID: subject.ID, Bimester: 3, Score: 6,
	}))

	require.NoError(t, repo.DeleteByKey(context.Background(), student.ID, subject.ID, 3))
	err := repo.DeleteByKey(context.Background(), student.ID, subject.ID, 3)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
