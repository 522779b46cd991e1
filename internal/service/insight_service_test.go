package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/escolalab/escolar-api/internal/dto"
	"github.com/escolalab/escolar-api/internal/models"
	"github.com/escolalab/escolar-api/internal/repository"
	"github.com/escolalab/escolar-api/pkg/ai"
)

type fakeInsightRepo struct {
	repository.InsightRepository
	created []models.Insight
}

func (f *fakeInsightRepo) Create(_ context.Context, insight *models.Insight) error {
	insight.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *insight)
	return nil
}

type bundleStudentRefs struct {
	repository.StudentRepository
	schools     map[uint]uint
	bundleCalls int
}

func (f *bundleStudentRefs) SchoolIDOf(ctx context.Context, id uint) (uint, error) {
	return schoolIDLookup(f.schools)(ctx, id)
}

func (f *bundleStudentRefs) GetBundle(_ context.Context, id uint) (repository.StudentBundle, error) {
	f.bundleCalls++
	return repository.StudentBundle{
		Student: models.Student{ID: id, Name: "Maria Souza", SchoolID: f.schools[id]},
	}, nil
}

type stubGenerator struct {
	text  string
	err   error
	calls int
	last  string
}

func (g *stubGenerator) Generate(_ context.Context, input ai.InsightInput) (string, error) {
	g.calls++
	g.last = input.Prompt
	return g.text, g.err
}

func TestInsightServiceGenerateFailureLeavesNoRow(t *testing.T) {
	repo := &fakeInsightRepo{}
	students := &bundleStudentRefs{schools: map[uint]uint{10: 1}}
	gen := &stubGenerator{err: errors.New("model overloaded")}
	svc := NewInsightService(repo, students, gen, nil, time.Minute, testValidator(), &fakeAudit{}, testLogger())

	_, err := svc.Generate(context.Background(), supervisorClaims(2, 1), dto.InsightGenerateRequest{
		StudentID: 10,
		Prompt:    "summarize progress",
	})
	require.ErrorIs(t, err, ErrInsightUnavailable)
	require.Empty(t, repo.created, "a failed generation must persist nothing")
	require.Equal(t, 1, gen.calls)
}

func TestInsightServiceGeneratePersistsSnapshot(t *testing.T) {
	repo := &fakeInsightRepo{}
	students := &bundleStudentRefs{schools: map[uint]uint{10: 1}}
	gen := &stubGenerator{text: "Maria is progressing steadily."}
	svc := NewInsightService(repo, students, gen, nil, time.Minute, testValidator(), &fakeAudit{}, testLogger())

	insight, err := svc.Generate(context.Background(), supervisorClaims(2, 1), dto.InsightGenerateRequest{
		StudentID: 10,
		Prompt:    "summarize progress",
	})
	require.NoError(t, err)
	require.Equal(t, "Maria is progressing steadily.", insight.Text)
	require.False(t, insight.GeneratedAt.IsZero())
	require.NotEmpty(t, insight.InputSnapshot, "the snapshot fed to the model is stored with the row")
	require.Equal(t, "summarize progress", gen.last)
	require.Len(t, repo.created, 1)
}

func TestInsightServiceSnapshotServedFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := &fakeInsightRepo{}
	students := &bundleStudentRefs{schools: map[uint]uint{10: 1}}
	gen := &stubGenerator{text: "steady"}
	svc := NewInsightService(repo, students, gen, cache, time.Minute, testValidator(), &fakeAudit{}, testLogger())

	req := dto.InsightGenerateRequest{StudentID: 10, Prompt: "summarize"}

	_, err := svc.Generate(context.Background(), supervisorClaims(2, 1), req)
	require.NoError(t, err)
	require.Equal(t, 1, students.bundleCalls)

	// The second generation reads the cached snapshot instead of rebuilding it.
	_, err = svc.Generate(context.Background(), supervisorClaims(2, 1), req)
	require.NoError(t, err)
	require.Equal(t, 1, students.bundleCalls)
	require.Equal(t, 2, gen.calls)
}

func TestInsightServiceGenerateCrossSchoolStudentForbidden(t *testing.T) {
	repo := &fakeInsightRepo{}
	students := &bundleStudentRefs{schools: map[uint]uint{10: 2}}
	gen := &stubGenerator{text: "x"}
	svc := NewInsightService(repo, students, gen, nil, time.Minute, testValidator(), &fakeAudit{}, testLogger())

	_, err := svc.Generate(context.Background(), teacherClaims(5, 1), dto.InsightGenerateRequest{StudentID: 10})
	require.ErrorIs(t, err, ErrWrongSchool)
	require.Zero(t, gen.calls, "the model must not be called for a student outside the actor's school")
	require.Empty(t, repo.created)
}
