package service

import (
	"alcyxob/trainer-dashboard/internal/calendar"
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/events"
	"alcyxob/trainer-dashboard/internal/filter"
	"alcyxob/trainer-dashboard/internal/render"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, nav NavigationMode) (*testEnv, *ViewController, *render.Latest) {
	t.Helper()
	env := newTestEnv(t)
	latest := &render.Latest{}
	vc := NewViewController(env.clients, env.workouts, env.builder, env.bus, nav, latest)
	return env, vc, latest
}

func TestViewController_InitialState(t *testing.T) {
	_, vc, _ := newTestController(t, "")
	snap, err := vc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.GranularityMonth, snap.Granularity)
	assert.Equal(t, "2024-05-26", snap.Anchor)
	assert.Equal(t, "May 2024", snap.Grid.Title)
	assert.Len(t, snap.Grid.Cells(), calendar.MonthCells)
	assert.Len(t, snap.Clients, 3)
}

func TestViewController_NextPrevByView(t *testing.T) {
	ctx := context.Background()
	_, vc, _ := newTestController(t, NavigateByView)

	snap, err := vc.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-26", snap.Anchor)
	assert.Equal(t, "June 2024", snap.Grid.Title)

	_, err = vc.SetView(ctx, domain.GranularityWeek)
	require.NoError(t, err)
	snap, err = vc.Prev(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-19", snap.Anchor)
	assert.Equal(t, "17 Jun – 23 Jun 2024", snap.Grid.Title)

	_, err = vc.SetView(ctx, domain.GranularityDay)
	require.NoError(t, err)
	snap, err = vc.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-20", snap.Anchor)
	assert.Equal(t, domain.GranularityDay, snap.Granularity)
}

func TestViewController_NextByMonth(t *testing.T) {
	ctx := context.Background()
	_, vc, _ := newTestController(t, NavigateByMonth)

	_, err := vc.SetView(ctx, domain.GranularityWeek)
	require.NoError(t, err)
	snap, err := vc.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-26", snap.Anchor)
	assert.Equal(t, domain.GranularityWeek, snap.Granularity)
}

func TestViewController_MonthStepClampsDay(t *testing.T) {
	ctx := context.Background()
	_, vc, _ := newTestController(t, NavigateByView)

	_, err := vc.SelectDate(ctx, time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = vc.SetView(ctx, domain.GranularityMonth)
	require.NoError(t, err)
	snap, err := vc.Prev(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", snap.Anchor)
}

func TestViewController_SelectDateOpensDay(t *testing.T) {
	ctx := context.Background()
	_, vc, latest := newTestController(t, "")

	snap, err := vc.SelectDate(ctx, time.Date(2024, time.May, 26, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityDay, snap.Granularity)
	assert.Equal(t, "2024-05-26", snap.SelectedDate)

	cells := snap.Grid.Cells()
	require.Len(t, cells, 1)
	require.Len(t, cells[0].Workouts, 3)
	assert.Equal(t, "Anna Ivanova", cells[0].Workouts[0].ClientName)
	assert.Equal(t, "14:00", cells[0].Workouts[2].Time)

	rendered, ok := latest.Get()
	require.True(t, ok)
	assert.Equal(t, snap.Version, rendered.Version)
}

func TestViewController_TodayResetsAnchor(t *testing.T) {
	ctx := context.Background()
	_, vc, _ := newTestController(t, "")
	_, err := vc.Next(ctx)
	require.NoError(t, err)

	snap, err := vc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-26", snap.Anchor)
}

func TestViewController_SetViewRejectsUnknown(t *testing.T) {
	_, vc, latest := newTestController(t, "")
	_, err := vc.SetView(context.Background(), "year")
	assert.ErrorIs(t, err, ErrInvalidGranularity)
	_, ok := latest.Get()
	assert.False(t, ok, "nothing rendered on rejected input")
}

func TestViewController_Filters(t *testing.T) {
	ctx := context.Background()
	env, vc, _ := newTestController(t, "")

	snap, err := vc.SetClientSearch(ctx, "ANNA")
	require.NoError(t, err)
	require.Len(t, snap.Clients, 1)
	assert.Equal(t, "Anna Ivanova", snap.Clients[0].Name)

	snap, err = vc.SetClientSearch(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, snap.Clients)

	_, err = env.clients.SetActive(ctx, 2, false)
	require.NoError(t, err)
	_, err = vc.SetClientSearch(ctx, "")
	require.NoError(t, err)
	snap, err = vc.SetClientStatus(ctx, domain.ClientStatusInactive)
	require.NoError(t, err)
	require.Len(t, snap.Clients, 1)
	assert.Equal(t, "Petr Sidorov", snap.Clients[0].Name)

	snap, err = vc.SetWorkoutFilter(ctx, filter.WorkoutFilter{Types: []domain.WorkoutType{domain.WorkoutCardio}})
	require.NoError(t, err)
	var shown int
	for _, c := range snap.Grid.Cells() {
		shown += len(c.Workouts)
	}
	assert.Equal(t, 1, shown)
	assert.Contains(t, env.kinds.all(), events.KindFilterChanged)
}

func TestViewController_PublishesAndVersions(t *testing.T) {
	ctx := context.Background()
	env, vc, _ := newTestController(t, "")

	var versions []uint64
	vc.AddRenderer(render.RendererFunc(func(s render.Snapshot) { versions = append(versions, s.Version) }))

	_, err := vc.Next(ctx)
	require.NoError(t, err)
	_, err = vc.SetView(ctx, domain.GranularityWeek)
	require.NoError(t, err)
	_, err = vc.Refresh(ctx)
	require.NoError(t, err)

	assert.Equal(t, []uint64{1, 2, 3}, versions)
	assert.Equal(t, []events.Kind{events.KindPeriodChanged, events.KindViewChanged}, env.kinds.all())
}

func TestViewController_RefreshesOnDataChange(t *testing.T) {
	ctx := context.Background()
	env, vc, latest := newTestController(t, "")
	_, err := vc.SelectDate(ctx, time.Date(2024, time.May, 27, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	_, err = env.workouts.Schedule(ctx, ScheduleWorkoutInput{ClientID: 2, Date: "2024-05-27", Time: "18:00", Type: domain.WorkoutCardio})
	require.NoError(t, err)

	snap, ok := latest.Get()
	require.True(t, ok)
	cells := snap.Grid.Cells()
	require.Len(t, cells[0].Workouts, 1)
	assert.Equal(t, "Petr Sidorov", cells[0].Workouts[0].ClientName)
}

func TestViewController_RenderAtIsStateless(t *testing.T) {
	ctx := context.Background()
	_, vc, latest := newTestController(t, "")

	grid, err := vc.RenderAt(ctx, domain.GranularityWeek, time.Date(2024, time.May, 26, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2024-05-20", grid.Start)
	assert.Len(t, grid.Rows, 14)

	snap, err := vc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityMonth, snap.Granularity)
	_, ok := latest.Get()
	assert.False(t, ok)

	_, err = vc.RenderAt(ctx, "year", time.Now())
	assert.ErrorIs(t, err, ErrInvalidGranularity)
}

func TestParseNavigationMode(t *testing.T) {
	m, err := ParseNavigationMode("")
	require.NoError(t, err)
	assert.Equal(t, NavigateByView, m)
	m, err = ParseNavigationMode("Month")
	require.NoError(t, err)
	assert.Equal(t, NavigateByMonth, m)
	_, err = ParseNavigationMode("year")
	assert.Error(t, err)
}
