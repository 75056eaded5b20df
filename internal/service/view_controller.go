package service

import (
	"alcyxob/trainer-dashboard/internal/calendar"
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/events"
	"alcyxob/trainer-dashboard/internal/filter"
	"alcyxob/trainer-dashboard/internal/render"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrInvalidGranularity = errors.New("invalid calendar view, expected month, week or day")

// NavigationMode decides how far Next and Prev move the anchor.
type NavigationMode string

const (
	// NavigateByView steps by the active granularity (month, week or day).
	NavigateByView NavigationMode = "view"
	// NavigateByMonth always steps a whole month.
	NavigateByMonth NavigationMode = "month"
)

// ParseNavigationMode maps config values; empty means NavigateByView.
func ParseNavigationMode(s string) (NavigationMode, error) {
	switch NavigationMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", NavigateByView:
		return NavigateByView, nil
	case NavigateByMonth:
		return NavigateByMonth, nil
	}
	return "", fmt.Errorf("unknown calendar navigation mode %q", s)
}

type viewState struct {
	anchor        time.Time
	granularity   domain.Granularity
	selected      time.Time
	clientFilter  filter.ClientFilter
	workoutFilter filter.WorkoutFilter
}

// ViewController owns the calendar and client-list view state. Every
// operation recomputes the snapshot, hands it to the renderers and
// publishes an event.
type ViewController struct {
	mu        sync.Mutex
	clients   ClientService
	workouts  WorkoutService
	builder   *calendar.Builder
	bus       *events.Bus
	renderers []render.Renderer
	nav       NavigationMode
	state     viewState
	version   uint64
}

// NewViewController starts on the month view of today. The controller
// re-renders on its own when clients or workouts change on the bus.
func NewViewController(clients ClientService, workouts WorkoutService, builder *calendar.Builder, bus *events.Bus, nav NavigationMode, renderers ...render.Renderer) *ViewController {
	if nav == "" {
		nav = NavigateByView
	}
	today := builder.Today()
	vc := &ViewController{
		clients:   clients,
		workouts:  workouts,
		builder:   builder,
		bus:       bus,
		renderers: renderers,
		nav:       nav,
		state: viewState{
			anchor:       today,
			granularity:  domain.GranularityMonth,
			selected:     today,
			clientFilter: filter.ClientFilter{Status: domain.ClientStatusAll},
		},
	}
	if bus != nil {
		bus.Subscribe(vc.onEvent)
	}
	return vc
}

// CurrentDate is today according to the builder's clock and location.
func (vc *ViewController) CurrentDate() time.Time { return vc.builder.Today() }

// AddRenderer registers another display.
func (vc *ViewController) AddRenderer(r render.Renderer) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.renderers = append(vc.renderers, r)
}

// Snapshot computes the current view without notifying renderers.
func (vc *ViewController) Snapshot(ctx context.Context) (render.Snapshot, error) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.snapshot(ctx)
}

// Refresh re-renders the current state, e.g. after data changed.
func (vc *ViewController) Refresh(ctx context.Context) (render.Snapshot, error) {
	return vc.update(ctx, func(*viewState) {}, nil)
}

// SetView switches granularity and keeps the anchor.
func (vc *ViewController) SetView(ctx context.Context, g domain.Granularity) (render.Snapshot, error) {
	if !g.Valid() {
		return render.Snapshot{}, fmt.Errorf("%w: %q", ErrInvalidGranularity, g)
	}
	return vc.update(ctx, func(s *viewState) {
		s.granularity = g
	}, func(s viewState) events.Message {
		return events.ViewChanged{Granularity: string(s.granularity), Anchor: domain.FormatDate(s.anchor)}
	})
}

func (vc *ViewController) Next(ctx context.Context) (render.Snapshot, error) {
	return vc.step(ctx, 1)
}

func (vc *ViewController) Prev(ctx context.Context) (render.Snapshot, error) {
	return vc.step(ctx, -1)
}

// Today moves the anchor back to the current date, keeping the granularity.
func (vc *ViewController) Today(ctx context.Context) (render.Snapshot, error) {
	today := vc.builder.Today()
	return vc.update(ctx, func(s *viewState) {
		s.anchor = today
		s.selected = today
	}, periodChanged(0))
}

// SelectDate opens the day view of d.
func (vc *ViewController) SelectDate(ctx context.Context, d time.Time) (render.Snapshot, error) {
	d = domain.StartOfDay(d.In(vc.builder.Location()))
	return vc.update(ctx, func(s *viewState) {
		s.anchor = d
		s.selected = d
		s.granularity = domain.GranularityDay
	}, func(s viewState) events.Message {
		return events.ViewChanged{Granularity: string(s.granularity), Anchor: domain.FormatDate(s.anchor)}
	})
}

func (vc *ViewController) SetClientSearch(ctx context.Context, term string) (render.Snapshot, error) {
	return vc.update(ctx, func(s *viewState) {
		s.clientFilter.SearchTerm = term
	}, filterChanged)
}

func (vc *ViewController) SetClientStatus(ctx context.Context, status domain.ClientStatusFilter) (render.Snapshot, error) {
	return vc.update(ctx, func(s *viewState) {
		s.clientFilter.Status = status
	}, filterChanged)
}

// SetWorkoutFilter narrows the workouts shown on the calendar.
func (vc *ViewController) SetWorkoutFilter(ctx context.Context, f filter.WorkoutFilter) (render.Snapshot, error) {
	return vc.update(ctx, func(s *viewState) {
		s.workoutFilter = f
	}, filterChanged)
}

// RenderAt builds a grid for any anchor and granularity without touching state.
func (vc *ViewController) RenderAt(ctx context.Context, g domain.Granularity, anchor time.Time) (calendar.Grid, error) {
	if !g.Valid() {
		return calendar.Grid{}, fmt.Errorf("%w: %q", ErrInvalidGranularity, g)
	}
	vc.mu.Lock()
	wf := vc.state.workoutFilter
	vc.mu.Unlock()
	return vc.grid(ctx, anchor, g, wf)
}

func (vc *ViewController) step(ctx context.Context, dir int) (render.Snapshot, error) {
	return vc.update(ctx, func(s *viewState) {
		by := s.granularity
		if vc.nav == NavigateByMonth {
			by = domain.GranularityMonth
		}
		s.anchor = calendar.Step(s.anchor, by, dir)
		s.selected = s.anchor
	}, periodChanged(dir))
}

// update applies mutate, renders, and publishes the event built by announce.
// Renderers run under the lock so displays see snapshots in order.
func (vc *ViewController) update(ctx context.Context, mutate func(*viewState), announce func(viewState) events.Message) (render.Snapshot, error) {
	vc.mu.Lock()
	prev := vc.state
	mutate(&vc.state)
	snap, err := vc.snapshot(ctx)
	if err != nil {
		vc.state = prev
		vc.mu.Unlock()
		return render.Snapshot{}, err
	}
	vc.version++
	snap.Version = vc.version
	for _, r := range vc.renderers {
		r.Render(snap)
	}
	state := vc.state
	vc.mu.Unlock()

	if announce != nil {
		vc.bus.Publish(announce(state))
	}
	return snap, nil
}

func (vc *ViewController) snapshot(ctx context.Context) (render.Snapshot, error) {
	s := vc.state
	grid, err := vc.grid(ctx, s.anchor, s.granularity, s.workoutFilter)
	if err != nil {
		return render.Snapshot{}, err
	}
	clients, err := vc.clients.List(ctx, s.clientFilter)
	if err != nil {
		return render.Snapshot{}, err
	}
	return render.Snapshot{
		Version:       vc.version,
		Granularity:   s.granularity,
		Anchor:        domain.FormatDate(s.anchor),
		SelectedDate:  domain.FormatDate(s.selected),
		Grid:          grid,
		Clients:       clients,
		ClientFilter:  s.clientFilter,
		WorkoutFilter: s.workoutFilter,
	}, nil
}

func (vc *ViewController) grid(ctx context.Context, anchor time.Time, g domain.Granularity, wf filter.WorkoutFilter) (calendar.Grid, error) {
	workouts, err := vc.workouts.List(ctx, wf)
	if err != nil {
		return calendar.Grid{}, err
	}
	dir, err := vc.clients.Directory(ctx)
	if err != nil {
		return calendar.Grid{}, err
	}
	return vc.builder.Build(anchor, g, workouts, dir), nil
}

func (vc *ViewController) onEvent(e events.Envelope) {
	switch e.Kind {
	case events.KindClientRegistered, events.KindClientUpdated,
		events.KindWorkoutScheduled, events.KindWorkoutStatusChanged, events.KindWorkoutDeleted:
		if _, err := vc.Refresh(context.Background()); err != nil {
			log.Errorf("Calendar refresh after %s failed: %v", e.Kind, err)
		}
	}
}

func periodChanged(dir int) func(viewState) events.Message {
	return func(s viewState) events.Message {
		return events.PeriodChanged{Granularity: string(s.granularity), Anchor: domain.FormatDate(s.anchor), Direction: dir}
	}
}

func filterChanged(s viewState) events.Message {
	return events.FilterChanged{SearchTerm: s.clientFilter.SearchTerm, Status: string(s.clientFilter.Status)}
}
