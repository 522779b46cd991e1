package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/escolalab/escolar-api/internal/dto"
	"github.com/escolalab/escolar-api/internal/models"
	"github.com/escolalab/escolar-api/internal/repository"
	"github.com/escolalab/escolar-api/internal/tenancy"
)

type fakeGradeRepo struct {
	repository.GradeRepository
	upserts []models.BimonthlyGrade
	batches [][]models.BimonthlyGrade
}

func (f *fakeGradeRepo) Upsert(_ context.Context, grade *models.BimonthlyGrade) error {
	f.upserts = append(f.upserts, *grade)
	return nil
}

func (f *fakeGradeRepo) UpsertBatch(_ context.Context, grades []models.BimonthlyGrade) error {
	f.batches = append(f.batches, grades)
	return nil
}

type fakeStudentRefs struct {
	repository.StudentRepository
	schools map[uint]uint
}

func (f *fakeStudentRefs) SchoolIDOf(ctx context.Context, id uint) (uint, error) {
	return schoolIDLookup(f.schools)(ctx, id)
}

type fakeSubjectRefs struct {
	repository.SubjectRepository
	schools map[uint]uint
}

func (f *fakeSubjectRefs) SchoolIDOf(ctx context.Context, id uint) (uint, error) {
	return schoolIDLookup(f.schools)(ctx, id)
}

func newGradeServiceForTest(repo *fakeGradeRepo, studentSchools, subjectSchools map[uint]uint) GradeService {
	return NewGradeService(
		repo,
		&fakeStudentRefs{schools: studentSchools},
		&fakeSubjectRefs{schools: subjectSchools},
		testValidator(),
		&fakeAudit{},
		testLogger(),
	)
}

func TestGradeServiceSaveBatchRejectsMissingSubject(t *testing.T) {
	repo := &fakeGradeRepo{}
	svc := newGradeServiceForTest(repo,
		map[uint]uint{10: 1},
		map[uint]uint{20: 1},
	)

	_, err := svc.SaveBatch(context.Background(), teacherClaims(5, 1), dto.GradeBatchRequest{
		StudentID: 10,
		Items: []dto.GradeBatchItem{
			{SubjectID: 20, Bimester: 1, Score: 7},
			{SubjectID: 99, Bimester: 1, Score: 8},
			{SubjectID: 20, Bimester: 2, Score: 6},
		},
	})
	require.ErrorIs(t, err, ErrSubjectNotFound)
	require.Empty(t, repo.batches, "a bad item must reject the whole batch before any write")
}

func TestGradeServiceSaveBatchRejectsCrossSchoolSubject(t *testing.T) {
	repo := &fakeGradeRepo{}
	svc := newGradeServiceForTest(repo,
		map[uint]uint{10: 1},
		map[uint]uint{20: 1, 21: 2},
	)

	_, err := svc.SaveBatch(context.Background(), teacherClaims(5, 1), dto.GradeBatchRequest{
		StudentID: 10,
		Items: []dto.GradeBatchItem{
			{SubjectID: 20, Bimester: 1, Score: 7},
			{SubjectID: 21, Bimester: 2, Score: 8},
		},
	})
	require.ErrorIs(t, err, ErrWrongSchool)
	require.Empty(t, repo.batches)
}

func TestGradeServiceSaveBatchWritesAllItems(t *testing.T) {
	repo := &fakeGradeRepo{}
	svc := newGradeServiceForTest(repo,
		map[uint]uint{10: 1},
		map[uint]uint{20: 1, 21: 1},
	)

	grades, err := svc.SaveBatch(context.Background(), supervisorClaims(2, 1), dto.GradeBatchRequest{
		StudentID: 10,
		Items: []dto.GradeBatchItem{
			{SubjectID: 20, Bimester: 1, Score: 7},
			{SubjectID: 21, Bimester: 1, Score: 9},
		},
	})
	require.NoError(t, err)
	require.Len(t, grades, 2)
	require.Len(t, repo.batches, 1)
	require.Len(t, repo.batches[0], 2)
}

func TestGradeServiceSaveBatchAdminNeedsViewingSchool(t *testing.T) {
	repo := &fakeGradeRepo{}
	svc := newGradeServiceForTest(repo, map[uint]uint{10: 1}, map[uint]uint{20: 1})

	_, err := svc.SaveBatch(context.Background(), adminClaims(1), dto.GradeBatchRequest{
		StudentID: 10,
		Items:     []dto.GradeBatchItem{{SubjectID: 20, Bimester: 1, Score: 7}},
	})
	require.ErrorIs(t, err, tenancy.ErrNoViewingSchool)
	require.Empty(t, repo.batches)
}

func TestGradeServiceSaveRejectsSpoofedSchool(t *testing.T) {
	repo := &fakeGradeRepo{}
	svc := newGradeServiceForTest(repo, map[uint]uint{10: 2}, map[uint]uint{20: 2})

	// The actor's home school is 1; the body claims school 2 where the
	// student really lives. The resolver must reject it before any lookup.
	_, err := svc.Save(context.Background(), teacherClaims(5, 1), dto.GradeUpsertRequest{
		StudentID: 10,
		SubjectID: 20,
		Bimester:  1,
		Score:     5,
		SchoolID:  2,
	})
	require.ErrorIs(t, err, tenancy.ErrSchoolMismatch)
	require.Empty(t, repo.upserts)
}
