package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_DeliversInOrder(t *testing.T) {
	bus := NewBus()
	var got []string
	bus.Subscribe(func(e Envelope) { got = append(got, "first:"+string(e.Kind)) })
	bus.Subscribe(func(e Envelope) { got = append(got, "second:"+string(e.Kind)) })

	bus.Publish(PeriodChanged{Granularity: "month", Anchor: "2024-05-01", Direction: 1})

	assert.Equal(t, []string{"first:period_changed", "second:period_changed"}, got)
}

func TestBus_PanickingSubscriberIsIsolated(t *testing.T) {
	bus := NewBus()
	delivered := 0
	bus.Subscribe(func(Envelope) { panic("host went away") })
	bus.Subscribe(func(e Envelope) {
		delivered++
		require.NotEmpty(t, e.ID)
		msg, ok := e.Message.(WorkoutScheduled)
		require.True(t, ok)
		assert.Equal(t, int64(7), msg.WorkoutID)
	})

	assert.NotPanics(t, func() { bus.Publish(WorkoutScheduled{WorkoutID: 7}) })
	assert.Equal(t, 1, delivered)
}

func TestBus_NilIsNoop(t *testing.T) {
	var bus *Bus
	assert.NotPanics(t, func() { bus.Publish(Notice{Text: "hi"}) })
}
