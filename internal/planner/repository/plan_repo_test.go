package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/buildwise/buildwise-backend/internal/planner/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPlanRepo(t *testing.T) (*PlanRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewPlanRepository(client, time.Hour), mr
}

func samplePlan() *domain.Plan {
	req := domain.NewProjectRequest()
	req.Normalize()
	return &domain.Plan{
		Request: req,
		Narrative: domain.Narrative{
			Summary:       "Two storey home",
			TimelineWeeks: 28,
			Risks:         domain.StringList{"monsoon"},
			SchedulePhases: []domain.SchedulePhase{
				{Phase: "Foundation", StartWeek: 1, EndWeek: 4},
			},
		},
		Model: "llama-3.1-8b-instant",
	}
}

func TestPlanRepository_SaveAndGet(t *testing.T) {
	repo, mr := setupPlanRepo(t)
	ctx := context.Background()

	plan := samplePlan()
	require.NoError(t, repo.Save(ctx, plan))
	assert.NotEmpty(t, plan.PlanID)
	assert.False(t, plan.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, plan.PlanID)
	require.NoError(t, err)
	assert.Equal(t, plan.Narrative, got.Narrative)
	assert.Equal(t, plan.Request, got.Request)

	ttl := mr.TTL(planKeyPrefix + plan.PlanID)
	assert.Equal(t, time.Hour, ttl)
}

func TestPlanRepository_GetByRequest(t *testing.T) {
	repo, _ := setupPlanRepo(t)
	ctx := context.Background()

	plan := samplePlan()
	require.NoError(t, repo.Save(ctx, plan))

	got, err := repo.GetByRequest(ctx, plan.Request, plan.Model)
	require.NoError(t, err)
	assert.Equal(t, plan.PlanID, got.PlanID)

	_, err = repo.GetByRequest(ctx, plan.Request, "another-model")
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)

	other := plan.Request
	other.Floors = 3
	_, err = repo.GetByRequest(ctx, other, plan.Model)
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
}

func TestPlanRepository_NotFoundAndExpiry(t *testing.T) {
	repo, mr := setupPlanRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)

	plan := samplePlan()
	require.NoError(t, repo.Save(ctx, plan))

	mr.FastForward(2 * time.Hour)
	_, err = repo.GetByID(ctx, plan.PlanID)
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
}

func TestPlanRepository_Ping(t *testing.T) {
	repo, mr := setupPlanRepo(t)
	require.NoError(t, repo.Ping(context.Background()))

	mr.Close()
	assert.Error(t, repo.Ping(context.Background()))
}

func TestFingerprint(t *testing.T) {
	a := domain.NewProjectRequest()
	b := domain.NewProjectRequest()

	fa, err := Fingerprint(a, "m")
	require.NoError(t, err)
	fb, err := Fingerprint(b, "m")
	require.NoError(t, err)
	assert.Equal(t, fa, fb)

	b.Timeline = domain.TimelineFastTrack
	fb, err = Fingerprint(b, "m")
	require.NoError(t, err)
	assert.NotEqual(t, fa, fb)
}
