// Package host bridges dashboard events to the chat-platform mini-app shell
// (haptic feedback, main button). The shell is optional; failures are logged.
package host

import (
	"alcyxob/trainer-dashboard/internal/events"

	log "github.com/sirupsen/logrus"
)

// HapticStyle follows the mini-app platform's impact/notification styles.
type HapticStyle string

const (
	HapticLight     HapticStyle = "light"
	HapticSelection HapticStyle = "selection"
	HapticSuccess   HapticStyle = "success"
)

// Notifier is the host shell as seen by the dashboard.
type Notifier interface {
	Haptic(style HapticStyle) error
	MainButton(visible bool, text string) error
}

// Attach subscribes n to the bus and translates events into host calls.
func Attach(bus *events.Bus, n Notifier) {
	if bus == nil || n == nil {
		return
	}
	bus.Subscribe(func(e events.Envelope) {
		var err error
		switch e.Kind {
		case events.KindClientSelected:
			err = n.Haptic(HapticLight)
		case events.KindPeriodChanged, events.KindViewChanged:
			err = n.Haptic(HapticSelection)
		case events.KindWorkoutScheduled, events.KindClientRegistered:
			err = n.Haptic(HapticSuccess)
			if err == nil {
				err = n.MainButton(false, "")
			}
		case events.KindWorkoutStatusChanged:
			err = n.Haptic(HapticSuccess)
		}
		if err != nil {
			log.Warnf("host: notification for %s failed: %s", e.Kind, err)
		}
	})
}

// LogNotifier records host calls in the log; used when no shell is attached.
type LogNotifier struct{}

func (LogNotifier) Haptic(style HapticStyle) error {
	log.Debugf("host: haptic %s", style)
	return nil
}

func (LogNotifier) MainButton(visible bool, text string) error {
	log.Debugf("host: main button visible=%t text=%q", visible, text)
	return nil
}
