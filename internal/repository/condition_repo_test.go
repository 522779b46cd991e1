package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/models"
)

func TestConditionRepositoryDuplicateNamePerStudent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConditionRepository(db)

	school := seedSchool(t, db, "Escola Azul")
	class := seedClass(t, db, school.ID, "5A")
	student := seedStudent(t, db, school.ID, class.ID, "s-100")
	other := seedStudent(t, db, school.ID, class.ID, "s-101")

	first := models.Condition{StudentID: student.ID, Name: "Dyslexia", ProofStatus: "reported"}
	require.NoError(t, repo.Create(context.Background(), &first))

	duplicate := models.Condition{StudentID: student.ID, Name: "Dyslexia", ProofStatus: "proven"}
	err := repo.Create(context.Background(), &duplicate)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// The same name on a different student is fine.
	sibling := models.Condition{StudentID: other.ID, Name: "Dyslexia", ProofStatus: "reported"}
	require.NoError(t, repo.Create(context.Background(), &sibling))
}

func TestConditionRepositoryDeleteMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConditionRepository(db)

	err := repo.Delete(context.Background(), 777)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
