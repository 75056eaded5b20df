package service

import (
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/events"
	"alcyxob/trainer-dashboard/internal/filter"
	"alcyxob/trainer-dashboard/internal/repository"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound    = errors.New("workout not found")
	ErrInvalidWorkoutType = errors.New("invalid workout type")
	ErrInvalidDuration    = errors.New("duration must be a positive number of minutes")
	ErrSlotTaken          = errors.New("client already has a workout at this date and time")
	ErrInvalidTransition  = errors.New("workout status change not allowed")
	ErrClientInactive     = errors.New("client is inactive")
)

const (
	DefaultWorkoutDuration = 60
	DefaultUpcomingLimit   = 10
)

// ScheduleWorkoutInput carries the fields of the "new workout" form.
type ScheduleWorkoutInput struct {
	ClientID        int64
	Date            string // YYYY-MM-DD
	Time            string // H:MM or HH:MM
	DurationMinutes int    // 0 means DefaultWorkoutDuration
	Type            domain.WorkoutType
	Location        string
	Notes           string
}

// WorkoutService books and tracks workouts.
type WorkoutService interface {
	Schedule(ctx context.Context, in ScheduleWorkoutInput) (*domain.Workout, error)
	GetByID(ctx context.Context, id int64) (*domain.Workout, error)
	List(ctx context.Context, f filter.WorkoutFilter) ([]domain.Workout, error)
	All(ctx context.Context) ([]domain.Workout, error)
	Start(ctx context.Context, id int64) (*domain.Workout, error)
	Complete(ctx context.Context, id int64) (*domain.Workout, error)
	Cancel(ctx context.Context, id int64) (*domain.Workout, error)
	Copy(ctx context.Context, id int64, date, clock string) (*domain.Workout, error)
	Delete(ctx context.Context, id int64) error
	ClientHistory(ctx context.Context, clientID int64) ([]domain.Workout, error)
	Upcoming(ctx context.Context, limit int) ([]domain.Workout, error)
	OnDate(ctx context.Context, date string) ([]domain.Workout, error)
	RefreshNextWorkouts(ctx context.Context) error
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo   repository.WorkoutRepository
	clientService ClientService
	bus           *events.Bus
	loc           *time.Location
	now           func() time.Time
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, clientService ClientService, bus *events.Bus, loc *time.Location, now func() time.Time) WorkoutService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &workoutService{
		workoutRepo:   workoutRepo,
		clientService: clientService,
		bus:           bus,
		loc:           loc,
		now:           now,
	}
}

// Schedule validates the form and books a new workout in status scheduled.
func (s *workoutService) Schedule(ctx context.Context, in ScheduleWorkoutInput) (*domain.Workout, error) {
	client, err := s.clientService.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if !client.IsActive {
		return nil, ErrClientInactive
	}
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWorkoutType, in.Type)
	}
	if in.DurationMinutes == 0 {
		in.DurationMinutes = DefaultWorkoutDuration
	}
	if in.DurationMinutes < 0 {
		return nil, ErrInvalidDuration
	}
	day, err := domain.ParseDate(in.Date, s.loc)
	if err != nil {
		return nil, err
	}
	clock, err := domain.NormalizeClock(in.Time)
	if err != nil {
		return nil, err
	}

	workout := &domain.Workout{
		ClientID:        client.ID,
		Date:            domain.FormatDate(day),
		Time:            clock,
		DurationMinutes: in.DurationMinutes,
		Type:            in.Type,
		Status:          domain.StatusScheduled,
		Location:        strings.TrimSpace(in.Location),
		Notes:           strings.TrimSpace(in.Notes),
	}
	return s.book(ctx, workout, client.Name)
}

func (s *workoutService) GetByID(ctx context.Context, id int64) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) List(ctx context.Context, f filter.WorkoutFilter) ([]domain.Workout, error) {
	workouts, err := s.workoutRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Workouts(workouts, f), nil
}

// All returns every workout in insertion order.
func (s *workoutService) All(ctx context.Context) ([]domain.Workout, error) {
	return s.workoutRepo.List(ctx)
}

func (s *workoutService) Start(ctx context.Context, id int64) (*domain.Workout, error) {
	return s.transition(ctx, id, domain.StatusInProgress)
}

func (s *workoutService) Complete(ctx context.Context, id int64) (*domain.Workout, error) {
	return s.transition(ctx, id, domain.StatusCompleted)
}

func (s *workoutService) Cancel(ctx context.Context, id int64) (*domain.Workout, error) {
	return s.transition(ctx, id, domain.StatusCancelled)
}

// Copy books a new scheduled workout with the source's details at another date and time.
func (s *workoutService) Copy(ctx context.Context, id int64, date, clock string) (*domain.Workout, error) {
	source, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Schedule(ctx, ScheduleWorkoutInput{
		ClientID:        source.ClientID,
		Date:            date,
		Time:            clock,
		DurationMinutes: source.DurationMinutes,
		Type:            source.Type,
		Location:        source.Location,
		Notes:           source.Notes,
	})
}

func (s *workoutService) Delete(ctx context.Context, id int64) error {
	workout, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.workoutRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	log.Infof("Deleted workout %d", id)
	s.bus.Publish(events.WorkoutDeleted{WorkoutID: id})
	s.refreshClient(ctx, workout.ClientID)
	return nil
}

// ClientHistory lists the client's workouts, newest first.
func (s *workoutService) ClientHistory(ctx context.Context, clientID int64) ([]domain.Workout, error) {
	if _, err := s.clientService.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	workouts, err := s.List(ctx, filter.WorkoutFilter{ClientID: clientID})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(workouts, func(i, j int) bool { return workouts[j].Before(workouts[i]) })
	return workouts, nil
}

// Upcoming returns scheduled workouts starting after now, soonest first.
func (s *workoutService) Upcoming(ctx context.Context, limit int) ([]domain.Workout, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	all, err := s.workoutRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now().In(s.loc)
	var out []domain.Workout
	for _, w := range all {
		if w.Status != domain.StatusScheduled {
			continue
		}
		start, err := time.ParseInLocation(domain.DateLayout+" "+domain.ClockLayout, w.Date+" "+w.Time, s.loc)
		if err != nil || !start.After(now) {
			continue
		}
		out = append(out, w)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Before(out[j]) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// OnDate returns the workouts of one date, time ascending.
func (s *workoutService) OnDate(ctx context.Context, date string) ([]domain.Workout, error) {
	day, err := domain.ParseDate(date, s.loc)
	if err != nil {
		return nil, err
	}
	workouts, err := s.List(ctx, filter.WorkoutFilter{From: day, To: day})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(workouts, func(i, j int) bool { return workouts[i].Before(workouts[j]) })
	return workouts, nil
}

func (s *workoutService) book(ctx context.Context, workout *domain.Workout, clientName string) (*domain.Workout, error) {
	existing, err := s.workoutRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, w := range existing {
		if w.ClientID == workout.ClientID && w.Date == workout.Date && w.Time == workout.Time &&
			w.Status != domain.StatusCancelled {
			return nil, ErrSlotTaken
		}
	}

	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	log.Infof("Scheduled workout %d for client %d on %s %s", id, workout.ClientID, workout.Date, workout.Time)
	s.bus.Publish(events.WorkoutScheduled{
		WorkoutID:  id,
		ClientID:   workout.ClientID,
		ClientName: clientName,
		Date:       workout.Date,
		Time:       workout.Time,
	})
	s.refreshClient(ctx, workout.ClientID)
	return s.GetByID(ctx, id)
}

func (s *workoutService) transition(ctx context.Context, id int64, next domain.WorkoutStatus) (*domain.Workout, error) {
	workout, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := workout.Status
	if !from.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, next)
	}
	workout.Status = next
	if next == domain.StatusCompleted {
		at := s.now().UTC()
		workout.CompletedAt = &at
	}
	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, err
	}
	s.bus.Publish(events.WorkoutStatusChanged{WorkoutID: id, From: string(from), To: string(next)})
	s.refreshClient(ctx, workout.ClientID)
	return s.GetByID(ctx, id)
}

// RefreshNextWorkouts recomputes nextWorkoutDate for every client against the
// current schedule. Loaded data may carry dates computed on an earlier day.
func (s *workoutService) RefreshNextWorkouts(ctx context.Context) error {
	all, err := s.workoutRepo.List(ctx)
	if err != nil {
		return err
	}
	clients, err := s.clientService.List(ctx, filter.ClientFilter{Status: domain.ClientStatusAll})
	if err != nil {
		return err
	}
	for _, c := range clients {
		if err := s.clientService.RefreshNextWorkout(ctx, c.ID, all); err != nil {
			return fmt.Errorf("refreshing next workout for client %d: %w", c.ID, err)
		}
	}
	return nil
}

// refreshClient keeps the client's nextWorkoutDate in step with the schedule.
// Failures are logged; the workout change itself already succeeded.
func (s *workoutService) refreshClient(ctx context.Context, clientID int64) {
	all, err := s.workoutRepo.List(ctx)
	if err == nil {
		err = s.clientService.RefreshNextWorkout(ctx, clientID, all)
	}
	if err != nil {
		log.Warnf("Could not refresh next workout date for client %d: %v", clientID, err)
	}
}
