package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/escolalab/escolar-api/internal/dto"
	"github.com/escolalab/escolar-api/internal/models"
	"github.com/escolalab/escolar-api/internal/repository"
)

type fakeStudentRepo struct {
	repository.StudentRepository
	schools  map[uint]uint
	students map[uint]models.Student
	created  []models.Student
	deleted  []uint
}

func (f *fakeStudentRepo) SchoolIDOf(ctx context.Context, id uint) (uint, error) {
	return schoolIDLookup(f.schools)(ctx, id)
}

func (f *fakeStudentRepo) ListBySchool(_ context.Context, schoolID uint) ([]models.Student, error) {
	students := []models.Student{}
	for _, student := range f.students {
		if student.SchoolID == schoolID {
			students = append(students, student)
		}
	}
	return students, nil
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id uint) (models.Student, error) {
	if student, ok := f.students[id]; ok {
		return student, nil
	}
	return models.Student{}, ErrStudentNotFound
}

func (f *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	student.ID = uint(len(f.created) + 100)
	f.created = append(f.created, *student)
	if f.students == nil {
		f.students = map[uint]models.Student{}
	}
	f.students[student.ID] = *student
	if f.schools == nil {
		f.schools = map[uint]uint{}
	}
	f.schools[student.ID] = student.SchoolID
	return nil
}

func (f *fakeStudentRepo) DeleteCascade(_ context.Context, id uint) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeClassRefs struct {
	repository.ClassRepository
	schools map[uint]uint
}

func (f *fakeClassRefs) SchoolIDOf(ctx context.Context, id uint) (uint, error) {
	return schoolIDLookup(f.schools)(ctx, id)
}

func newStudentServiceForTest(repo *fakeStudentRepo, classSchools map[uint]uint) StudentService {
	return NewStudentService(repo, &fakeClassRefs{schools: classSchools}, testValidator(), &fakeAudit{}, testLogger())
}

func TestStudentServiceCreateRejectsCrossSchoolClass(t *testing.T) {
	repo := &fakeStudentRepo{}
	svc := newStudentServiceForTest(repo, map[uint]uint{40: 2})

	_, err := svc.Create(context.Background(), supervisorClaims(2, 1), dto.StudentCreateRequest{
		Name:         "Maria Souza",
		Registration: "s-500",
		Age:          11,
		ClassID:      40,
	})
	require.ErrorIs(t, err, ErrWrongSchool)
	require.Empty(t, repo.created)
}

func TestStudentServiceCreateMissingClassIsNotFound(t *testing.T) {
	repo := &fakeStudentRepo{}
	svc := newStudentServiceForTest(repo, map[uint]uint{})

	_, err := svc.Create(context.Background(), supervisorClaims(2, 1), dto.StudentCreateRequest{
		Name:         "Maria Souza",
		Registration: "s-500",
		Age:          11,
		ClassID:      404,
	})
	require.ErrorIs(t, err, ErrClassNotFound)
}

func TestStudentServiceCreateStampsResolvedSchool(t *testing.T) {
	repo := &fakeStudentRepo{}
	svc := newStudentServiceForTest(repo, map[uint]uint{40: 1})

	// A forged body school id matching nothing the actor owns is rejected by
	// the resolver; omitting it stamps the actor's home school.
	student, err := svc.Create(context.Background(), supervisorClaims(2, 1), dto.StudentCreateRequest{
		Name:         "Maria Souza",
		Registration: "s-500",
		Age:          11,
		ClassID:      40,
	})
	require.NoError(t, err)
	require.Equal(t, uint(1), student.SchoolID)
}

func TestStudentServiceListAdminWithoutViewingSchoolIsEmpty(t *testing.T) {
	repo := &fakeStudentRepo{
		schools:  map[uint]uint{10: 1},
		students: map[uint]models.Student{10: {ID: 10, SchoolID: 1}},
	}
	svc := newStudentServiceForTest(repo, nil)

	students, err := svc.List(context.Background(), adminClaims(1), 0)
	require.NoError(t, err)
	require.NotNil(t, students)
	require.Empty(t, students)

	// Selecting a school restores the listing.
	students, err = svc.List(context.Background(), adminClaims(1), 1)
	require.NoError(t, err)
	require.Len(t, students, 1)
}

func TestStudentServiceDeleteDeniedForTeacher(t *testing.T) {
	repo := &fakeStudentRepo{schools: map[uint]uint{10: 1}}
	svc := newStudentServiceForTest(repo, nil)

	err := svc.Delete(context.Background(), teacherClaims(5, 1), 10, 0)
	require.ErrorIs(t, err, ErrNotPermitted)
	require.Empty(t, repo.deleted)
}

func TestStudentServiceDeleteScopedToOwnSchool(t *testing.T) {
	repo := &fakeStudentRepo{schools: map[uint]uint{10: 2}}
	svc := newStudentServiceForTest(repo, nil)

	err := svc.Delete(context.Background(), supervisorClaims(2, 1), 10, 0)
	require.ErrorIs(t, err, ErrWrongSchool)
	require.Empty(t, repo.deleted)
}
