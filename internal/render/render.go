// Package render defines the boundary between the dashboard core and its
// displays. The core pushes a Snapshot after every state change; adapters
// draw it and report nothing back.
package render

import (
	"alcyxob/trainer-dashboard/internal/calendar"
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/filter"
	"sync"
)

// Snapshot is everything a display needs to draw the dashboard.
type Snapshot struct {
	Version       uint64               `json:"version"`
	Granularity   domain.Granularity   `json:"granularity"`
	Anchor        string               `json:"anchor"`
	SelectedDate  string               `json:"selectedDate"`
	Grid          calendar.Grid        `json:"grid"`
	Clients       []domain.Client      `json:"clients"`
	ClientFilter  filter.ClientFilter  `json:"clientFilter"`
	WorkoutFilter filter.WorkoutFilter `json:"workoutFilter"`
}

// Renderer draws snapshots. Render must not call back into the controller.
type Renderer interface {
	Render(Snapshot)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Snapshot)

func (f RendererFunc) Render(s Snapshot) { f(s) }

// Latest keeps the most recent snapshot for pull-style adapters.
type Latest struct {
	mu   sync.RWMutex
	snap Snapshot
	ok   bool
}

func (l *Latest) Render(s Snapshot) {
	l.mu.Lock()
	l.snap, l.ok = s, true
	l.mu.Unlock()
}

// Get returns the last rendered snapshot, if any.
func (l *Latest) Get() (Snapshot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap, l.ok
}
