// Package events carries typed notifications from the dashboard core to its
// collaborators (render adapters, host shell, metrics). Delivery is synchronous
// and fire-and-forget: a failing subscriber never affects the publisher.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Kind names a message type.
type Kind string

const (
	KindClientSelected       Kind = "client_selected"
	KindClientRegistered     Kind = "client_registered"
	KindClientUpdated        Kind = "client_updated"
	KindWorkoutScheduled     Kind = "workout_scheduled"
	KindWorkoutStatusChanged Kind = "workout_status_changed"
	KindWorkoutDeleted       Kind = "workout_deleted"
	KindPeriodChanged        Kind = "period_changed"
	KindViewChanged          Kind = "view_changed"
	KindFilterChanged        Kind = "filter_changed"
	KindNotice               Kind = "notice"
)

// Message is implemented by every event payload.
type Message interface {
	Kind() Kind
}

type ClientSelected struct {
	ClientID int64 `json:"clientId"`
}

type ClientRegistered struct {
	ClientID int64  `json:"clientId"`
	Name     string `json:"name"`
}

type ClientUpdated struct {
	ClientID int64 `json:"clientId"`
}

type WorkoutScheduled struct {
	WorkoutID  int64  `json:"workoutId"`
	ClientID   int64  `json:"clientId"`
	ClientName string `json:"clientName"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

type WorkoutStatusChanged struct {
	WorkoutID int64  `json:"workoutId"`
	From      string `json:"from"`
	To        string `json:"to"`
}

type WorkoutDeleted struct {
	WorkoutID int64 `json:"workoutId"`
}

type PeriodChanged struct {
	Granularity string `json:"granularity"`
	Anchor      string `json:"anchor"`
	Direction   int    `json:"direction"` // -1 back, +1 forward, 0 jump
}

type ViewChanged struct {
	Granularity string `json:"granularity"`
	Anchor      string `json:"anchor"`
}

type FilterChanged struct {
	SearchTerm string `json:"searchTerm"`
	Status     string `json:"status"`
}

// Notice is an informational message for the user ("feature in development", help text).
type Notice struct {
	Level string `json:"level"` // info, success, error
	Text  string `json:"text"`
}

func (ClientSelected) Kind() Kind       { return KindClientSelected }
func (ClientRegistered) Kind() Kind     { return KindClientRegistered }
func (ClientUpdated) Kind() Kind        { return KindClientUpdated }
func (WorkoutScheduled) Kind() Kind     { return KindWorkoutScheduled }
func (WorkoutStatusChanged) Kind() Kind { return KindWorkoutStatusChanged }
func (WorkoutDeleted) Kind() Kind       { return KindWorkoutDeleted }
func (PeriodChanged) Kind() Kind        { return KindPeriodChanged }
func (ViewChanged) Kind() Kind          { return KindViewChanged }
func (FilterChanged) Kind() Kind        { return KindFilterChanged }
func (Notice) Kind() Kind               { return KindNotice }

// Envelope wraps a message with delivery metadata.
type Envelope struct {
	ID      string    `json:"id"`
	At      time.Time `json:"at"`
	Kind    Kind      `json:"kind"`
	Message Message   `json:"message"`
}

// Handler receives published envelopes.
type Handler func(Envelope)

// Bus is a synchronous in-process publisher.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	now      func() time.Time
}

func NewBus() *Bus {
	return &Bus{now: time.Now}
}

// Subscribe registers h for every message.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish delivers msg to all subscribers in registration order.
// A nil bus drops the message.
func (b *Bus) Publish(msg Message) {
	if b == nil || msg == nil {
		return
	}
	env := Envelope{ID: uuid.NewString(), At: b.now().UTC(), Kind: msg.Kind(), Message: msg}

	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers...)
	b.mu.RUnlock()

	for _, h := range handlers {
		deliver(h, env)
	}
}

func deliver(h Handler, env Envelope) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("events: subscriber panicked on %s: %v", env.Kind, r)
		}
	}()
	h(env)
}
