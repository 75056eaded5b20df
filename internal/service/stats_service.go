package service

import (
	"alcyxob/trainer-dashboard/internal/calendar"
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/filter"
	"context"
	"sort"
	"time"
)

const topExercisesLimit = 5

// ScheduleItem is a workout with its resolved client label.
type ScheduleItem struct {
	domain.Workout
	ClientName string `json:"clientName"`
}

// Dashboard is the summary shown on the home screen.
type Dashboard struct {
	Date          string         `json:"date"`
	TotalClients  int            `json:"totalClients"`
	ActiveClients int            `json:"activeClients"`
	TotalWorkouts int            `json:"totalWorkouts"`
	TodayWorkouts int            `json:"todayWorkouts"`
	TodaySchedule []ScheduleItem `json:"todaySchedule"`
	Upcoming      []ScheduleItem `json:"upcoming"`
}

// ExerciseCount is one row of the "most used exercises" table.
type ExerciseCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Statistics aggregates the workout book and saved plans.
type Statistics struct {
	Total        int                          `json:"total"`
	ByStatus     map[domain.WorkoutStatus]int `json:"byStatus"`
	ByType       map[domain.WorkoutType]int   `json:"byType"`
	ByClient     map[int64]int                `json:"byClient"`
	TopExercises []ExerciseCount              `json:"topExercises"`
}

// StatsService computes read-only summaries.
type StatsService interface {
	Dashboard(ctx context.Context, upcomingLimit int) (*Dashboard, error)
	Statistics(ctx context.Context) (*Statistics, error)
}

type statsService struct {
	clients  ClientService
	workouts WorkoutService
	planner  PlannerService
	today    func() time.Time
}

// NewStatsService creates a new instance of statsService. planner may be nil,
// in which case TopExercises stays empty.
func NewStatsService(clients ClientService, workouts WorkoutService, planner PlannerService, today func() time.Time) StatsService {
	if today == nil {
		today = func() time.Time { return domain.StartOfDay(time.Now()) }
	}
	return &statsService{clients: clients, workouts: workouts, planner: planner, today: today}
}

func (s *statsService) Dashboard(ctx context.Context, upcomingLimit int) (*Dashboard, error) {
	all, err := s.clients.List(ctx, filter.ClientFilter{Status: domain.ClientStatusAll})
	if err != nil {
		return nil, err
	}
	workouts, err := s.workouts.All(ctx)
	if err != nil {
		return nil, err
	}
	today := domain.FormatDate(s.today())
	todays, err := s.workouts.OnDate(ctx, today)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.workouts.Upcoming(ctx, upcomingLimit)
	if err != nil {
		return nil, err
	}
	dir, err := s.clients.Directory(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Date:          today,
		TotalClients:  len(all),
		TotalWorkouts: len(workouts),
		TodayWorkouts: len(todays),
		TodaySchedule: withNames(todays, dir),
		Upcoming:      withNames(upcoming, dir),
	}
	for _, c := range all {
		if c.IsActive {
			d.ActiveClients++
		}
	}
	return d, nil
}

func (s *statsService) Statistics(ctx context.Context) (*Statistics, error) {
	workouts, err := s.workouts.All(ctx)
	if err != nil {
		return nil, err
	}
	st := &Statistics{
		Total:        len(workouts),
		ByStatus:     make(map[domain.WorkoutStatus]int),
		ByType:       make(map[domain.WorkoutType]int),
		ByClient:     make(map[int64]int),
		TopExercises: []ExerciseCount{},
	}
	for _, w := range workouts {
		st.ByStatus[w.Status]++
		st.ByType[w.Type]++
		st.ByClient[w.ClientID]++
	}

	if s.planner == nil {
		return st, nil
	}
	templates, err := s.planner.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, t := range templates {
		for _, ex := range t.Exercises {
			counts[ex.Name]++
		}
	}
	for name, n := range counts {
		st.TopExercises = append(st.TopExercises, ExerciseCount{Name: name, Count: n})
	}
	sort.Slice(st.TopExercises, func(i, j int) bool {
		a, b := st.TopExercises[i], st.TopExercises[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})
	if len(st.TopExercises) > topExercisesLimit {
		st.TopExercises = st.TopExercises[:topExercisesLimit]
	}
	return st, nil
}

func withNames(workouts []domain.Workout, dir calendar.Directory) []ScheduleItem {
	items := make([]ScheduleItem, 0, len(workouts))
	for _, w := range workouts {
		name, ok := dir.ClientName(w.ClientID)
		if !ok {
			name = calendar.DefaultUnknownClientLabel
		}
		items = append(items, ScheduleItem{Workout: w, ClientName: name})
	}
	return items
}
