package app

import (
	"alcyxob/trainer-dashboard/internal/config"
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/render"
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.Calendar.Timezone = "UTC"
	return cfg
}

func TestNew_DemoWiring(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.May, 26, 10, 0, 0, 0, time.UTC)
	latest := &render.Latest{}

	a, err := New(ctx, testConfig(t), Options{
		Now:       func() time.Time { return now },
		Renderers: []render.Renderer{latest},
	})
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Presigner)
	require.NotNil(t, a.Metrics)

	clients, err := a.Store.Clients().List(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 3)
	assert.Equal(t, "2024-05-26", clients[0].NextWorkoutDate)
	assert.Empty(t, clients[1].NextWorkoutDate)

	snap, err := a.Controller.SetView(ctx, domain.GranularityWeek)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-26", snap.Anchor)

	pushed, ok := latest.Get()
	require.True(t, ok)
	assert.Equal(t, snap.Version, pushed.Version)
	assert.Equal(t, float64(1), testutil.ToFloat64(a.Metrics.CounterCalendarRenders.WithLabelValues("week")))

	res, err := a.Commands.Run(ctx, "calendar.next", nil)
	require.NoError(t, err)
	assert.Equal(t, "27 May – 2 Jun 2024", res.Notice.Text)
}

func TestNew_MonthNavigationAndNoMetrics(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Enabled = false
	cfg.Calendar.Navigation = "month"
	now := time.Date(2024, time.January, 31, 9, 0, 0, 0, time.UTC)

	a, err := New(context.Background(), cfg, Options{Now: func() time.Time { return now }})
	require.NoError(t, err)
	defer a.Close()
	assert.Nil(t, a.Metrics)

	ctx := context.Background()
	_, err = a.Controller.SetView(ctx, domain.GranularityDay)
	require.NoError(t, err)
	snap, err := a.Controller.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", snap.Anchor)
}

func TestNew_RecomputesNextWorkoutDates(t *testing.T) {
	now := time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)
	a, err := New(context.Background(), testConfig(t), Options{Now: func() time.Time { return now }})
	require.NoError(t, err)
	defer a.Close()

	// Every demo booking is in the past on this day.
	clients, err := a.Store.Clients().List(context.Background())
	require.NoError(t, err)
	for _, c := range clients {
		assert.Empty(t, c.NextWorkoutDate, "client %d", c.ID)
	}
}

func TestNew_InvalidNavigation(t *testing.T) {
	cfg := testConfig(t)
	cfg.Calendar.Navigation = "sideways"
	_, err := New(context.Background(), cfg, Options{})
	assert.Error(t, err)
}
