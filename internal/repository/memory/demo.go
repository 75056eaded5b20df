package memory

import (
	"alcyxob/trainer-dashboard/internal/domain"
	"context"
	"time"
)

// DemoSource provides the sample roster the dashboard ships with. The
// clients' next workout dates match the scheduled demo workouts as of 2024-05-26.
type DemoSource struct{}

func (DemoSource) LoadClients(context.Context) ([]domain.Client, error) {
	created := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	return []domain.Client{
		{ID: 1, Name: "Anna Ivanova", Avatar: "AI", Goal: domain.GoalText("weight_loss"), ProgressPercent: 75, IsActive: true,
			Email: "anna@example.com", Phone: "+7 999 123 45 67", NextWorkoutDate: "2024-05-26", CreatedAt: created, UpdatedAt: created},
		{ID: 2, Name: "Petr Sidorov", Avatar: "PS", Goal: domain.GoalText("muscle_gain"), ProgressPercent: 60, IsActive: true,
			Email: "petr@example.com", Phone: "+7 999 123 45 68", CreatedAt: created, UpdatedAt: created},
		{ID: 3, Name: "Maria Petrova", Avatar: "MP", Goal: domain.GoalText("health"), ProgressPercent: 85, IsActive: true,
			Email: "maria@example.com", Phone: "+7 999 123 45 69", NextWorkoutDate: "2024-05-26", CreatedAt: created, UpdatedAt: created},
	}, nil
}

func (DemoSource) LoadWorkouts(context.Context) ([]domain.Workout, error) {
	created := time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC)
	return []domain.Workout{
		{ID: 1, ClientID: 1, Date: "2024-05-26", Time: "09:00", DurationMinutes: 60, Type: domain.WorkoutStrength,
			Status: domain.StatusScheduled, Location: "Gym", CreatedAt: created, UpdatedAt: created},
		{ID: 2, ClientID: 2, Date: "2024-05-26", Time: "11:00", DurationMinutes: 60, Type: domain.WorkoutCardio,
			Status: domain.StatusCompleted, Location: "Gym", CreatedAt: created, UpdatedAt: created},
		{ID: 3, ClientID: 3, Date: "2024-05-26", Time: "14:00", DurationMinutes: 60, Type: domain.WorkoutFunctional,
			Status: domain.StatusScheduled, Location: "Gym", CreatedAt: created, UpdatedAt: created},
	}, nil
}
