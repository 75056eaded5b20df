package service

import (
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/events"
	"alcyxob/trainer-dashboard/internal/filter"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientService_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c, err := env.clients.Register(ctx, RegisterClientInput{
		FirstName: " Ivan ", LastName: "Kozlov", Email: "ivan@example.com", GoalKey: "strength",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), c.ID)
	assert.Equal(t, "Ivan Kozlov", c.Name)
	assert.Equal(t, "IK", c.Avatar)
	assert.Equal(t, "Strength", c.Goal)
	assert.Zero(t, c.ProgressPercent)
	assert.True(t, c.IsActive)
	assert.Contains(t, env.kinds.all(), events.KindClientRegistered)

	all, err := env.clients.List(ctx, filter.ClientFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Ivan Kozlov", all[3].Name)
}

func TestClientService_RegisterUnknownGoal(t *testing.T) {
	env := newTestEnv(t)
	c, err := env.clients.Register(context.Background(), RegisterClientInput{FirstName: "Olga", LastName: "Smirnova", GoalKey: "yoga"})
	require.NoError(t, err)
	assert.Equal(t, domain.GoalNotSpecified, c.Goal)
}

func TestClientService_RegisterRequiresNames(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.clients.Register(context.Background(), RegisterClientInput{FirstName: "Ivan"})
	assert.ErrorIs(t, err, ErrClientNameMissing)
}

func TestClientService_GetByIDNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.clients.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestClientService_UpdateProgressClamps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c, err := env.clients.UpdateProgress(ctx, 1, 150)
	require.NoError(t, err)
	assert.Equal(t, 100, c.ProgressPercent)

	c, err = env.clients.UpdateProgress(ctx, 1, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, c.ProgressPercent)
	assert.Contains(t, env.kinds.all(), events.KindClientUpdated)
}

func TestClientService_SetActiveAffectsStatusFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.clients.SetActive(ctx, 2, false)
	require.NoError(t, err)

	inactive, err := env.clients.List(ctx, filter.ClientFilter{Status: domain.ClientStatusInactive})
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, "Petr Sidorov", inactive[0].Name)

	active, err := env.clients.List(ctx, filter.ClientFilter{Status: domain.ClientStatusActive})
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestClientService_Select(t *testing.T) {
	env := newTestEnv(t)
	c, err := env.clients.Select(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Maria Petrova", c.Name)
	assert.Equal(t, []events.Kind{events.KindClientSelected}, env.kinds.all())
}

func TestClientService_RefreshNextWorkout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	workouts := []domain.Workout{
		{ID: 10, ClientID: 1, Date: "2024-05-20", Status: domain.StatusScheduled}, // in the past
		{ID: 11, ClientID: 1, Date: "2024-06-03", Status: domain.StatusScheduled},
		{ID: 12, ClientID: 1, Date: "2024-05-30", Status: domain.StatusCancelled},
		{ID: 13, ClientID: 1, Date: "2024-05-31", Status: domain.StatusScheduled},
		{ID: 14, ClientID: 2, Date: "2024-05-27", Status: domain.StatusScheduled},
	}
	require.NoError(t, env.clients.RefreshNextWorkout(ctx, 1, workouts))
	c, err := env.clients.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-31", c.NextWorkoutDate)

	require.NoError(t, env.clients.RefreshNextWorkout(ctx, 1, nil))
	c, err = env.clients.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, c.NextWorkoutDate)
}

func TestClientService_Directory(t *testing.T) {
	env := newTestEnv(t)
	dir, err := env.clients.Directory(context.Background())
	require.NoError(t, err)

	name, ok := dir.ClientName(2)
	assert.True(t, ok)
	assert.Equal(t, "Petr Sidorov", name)

	_, ok = dir.ClientName(42)
	assert.False(t, ok)
}
