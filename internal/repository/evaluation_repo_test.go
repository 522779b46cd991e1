package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/escolalab/escolar-api/internal/models"
)

func TestEvaluationRepositoryUpsertOverwritesByNaturalKey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEvaluationRepository(db)

	school := seedSchool(t, db, "Escola Azul")
	class := seedClass(t, db, school.ID, "5A")
	subject := seedSubject(t, db, school.ID, "Math")
	teacher := seedTeacher(t, db, school.ID, "t-100")
	student := seedStudent(t, db, school.ID, class.ID, "s-100")
	activity := seedActivity(t, db, school.ID, subject.ID, teacher.ID, 10)

	first := models.Evaluation{
		StudentID:   student.ID,
		ActivityID:  activity.ID,
		TeacherID:   teacher.ID,
		Score:       5,
		Feedback:    "needs review",
		EvaluatedAt: time.Now(),
	}
	require.NoError(t, repo.Upsert(context.Background(), &first))

	second := models.Evaluation{
		StudentID:   student.ID,
		ActivityID:  activity.ID,
		TeacherID:   teacher.ID,
		Score:       8,
		Feedback:    "much improved",
		OnTime:      true,
		EvaluatedAt: time.Now(),
	}
	require.NoError(t, repo.Upsert(context.Background(), &second))

	evals, err := repo.ListByStudent(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, evals, 1, "second save for the same pair must overwrite, not insert")
	require.Equal(t, float64(8), evals[0].Score)
	require.Equal(t, "much improved", evals[0].Feedback)
	require.True(t, evals[0].OnTime)
}
