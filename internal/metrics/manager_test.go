package metrics

import (
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/events"
	"alcyxob/trainer-dashboard/internal/render"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestManager_Render(t *testing.T) {
	m := NewTestManager()
	m.Render(render.Snapshot{Granularity: domain.GranularityWeek})
	m.Render(render.Snapshot{Granularity: domain.GranularityWeek})
	m.Render(render.Snapshot{Granularity: domain.GranularityDay})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterCalendarRenders.WithLabelValues("week")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterCalendarRenders.WithLabelValues("day")))
}

func TestManager_Observe(t *testing.T) {
	m := NewTestManager()
	bus := events.NewBus()
	m.Observe(bus)

	bus.Publish(events.WorkoutScheduled{WorkoutID: 1})
	bus.Publish(events.Notice{Text: "hi"})
	bus.Publish(events.Notice{Text: "again"})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterEvents.WithLabelValues(string(events.KindWorkoutScheduled))))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterEvents.WithLabelValues(string(events.KindNotice))))
}

func TestManager_CommandRun(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()
	m.CommandRun("help", nil)
	m.CommandRun("eval", errors.New("unknown action"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterCommands.WithLabelValues("help", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterCommands.WithLabelValues("eval", "error")))

	n, err := testutil.GatherAndCount(reg, "trainer_test_server_commands")
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
}
