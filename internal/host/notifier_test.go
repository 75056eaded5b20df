package host

import (
	"alcyxob/trainer-dashboard/internal/events"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingNotifier struct {
	haptics []HapticStyle
	buttons []bool
	fail    bool
}

func (r *recordingNotifier) Haptic(style HapticStyle) error {
	r.haptics = append(r.haptics, style)
	if r.fail {
		return errors.New("webview closed")
	}
	return nil
}

func (r *recordingNotifier) MainButton(visible bool, _ string) error {
	r.buttons = append(r.buttons, visible)
	return nil
}

func TestAttach(t *testing.T) {
	bus := events.NewBus()
	n := &recordingNotifier{}
	Attach(bus, n)

	bus.Publish(events.ClientSelected{ClientID: 1})
	bus.Publish(events.PeriodChanged{Direction: 1})
	bus.Publish(events.WorkoutScheduled{WorkoutID: 1})
	bus.Publish(events.FilterChanged{})

	assert.Equal(t, []HapticStyle{HapticLight, HapticSelection, HapticSuccess}, n.haptics)
	assert.Equal(t, []bool{false}, n.buttons)
}

func TestAttach_FailuresDoNotPropagate(t *testing.T) {
	bus := events.NewBus()
	n := &recordingNotifier{fail: true}
	Attach(bus, n)

	assert.NotPanics(t, func() { bus.Publish(events.WorkoutScheduled{WorkoutID: 1}) })
	assert.Empty(t, n.buttons)
}
