// internal/repository/memory/store.go
package memory

import (
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/repository"
	"context"
	"fmt"
	"sync"
	"time"
)

// Store is the in-memory entity store for clients and workouts.
// Records keep insertion order; ids are assigned sequentially.
type Store struct {
	mu            sync.RWMutex
	clients       []domain.Client
	workouts      []domain.Workout
	nextClientID  int64
	nextWorkoutID int64
	now           func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{nextClientID: 1, nextWorkoutID: 1, now: time.Now}
}

// Load replaces the store contents with records from an EntitySource.
// Ids of loaded records are kept; new ids continue after the largest one.
func (s *Store) Load(ctx context.Context, source repository.EntitySource) error {
	clients, err := source.LoadClients(ctx)
	if err != nil {
		return err
	}
	workouts, err := source.LoadWorkouts(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = append([]domain.Client(nil), clients...)
	s.workouts = append([]domain.Workout(nil), workouts...)
	s.nextClientID, s.nextWorkoutID = 1, 1
	for _, c := range s.clients {
		if c.ID >= s.nextClientID {
			s.nextClientID = c.ID + 1
		}
	}
	for _, w := range s.workouts {
		if w.ID >= s.nextWorkoutID {
			s.nextWorkoutID = w.ID + 1
		}
	}
	return nil
}

// Clients returns the client repository view of the store.
func (s *Store) Clients() repository.ClientRepository { return &clientRepo{s} }

// Workouts returns the workout repository view of the store.
func (s *Store) Workouts() repository.WorkoutRepository { return &workoutRepo{s} }

type clientRepo struct{ s *Store }

func (r *clientRepo) Create(_ context.Context, client *domain.Client) (int64, error) {
	if client.Name == "" {
		return 0, fmt.Errorf("%w: client name is required", repository.ErrInvalidInput)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	client.ID = r.s.nextClientID
	r.s.nextClientID++
	now := r.s.now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now
	r.s.clients = append(r.s.clients, *client)
	return client.ID, nil
}

func (r *clientRepo) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := range r.s.clients {
		if r.s.clients[i].ID == id {
			c := r.s.clients[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *clientRepo) List(_ context.Context) ([]domain.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]domain.Client{}, r.s.clients...), nil
}

func (r *clientRepo) Update(_ context.Context, client *domain.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.clients {
		if r.s.clients[i].ID == client.ID {
			client.CreatedAt = r.s.clients[i].CreatedAt
			client.UpdatedAt = r.s.now().UTC()
			r.s.clients[i] = *client
			return nil
		}
	}
	return repository.ErrNotFound
}

type workoutRepo struct{ s *Store }

func (r *workoutRepo) Create(_ context.Context, workout *domain.Workout) (int64, error) {
	if workout.ClientID == 0 || workout.Date == "" || workout.Time == "" {
		return 0, fmt.Errorf("%w: workout requires clientId, date and time", repository.ErrInvalidInput)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	workout.ID = r.s.nextWorkoutID
	r.s.nextWorkoutID++
	now := r.s.now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now
	r.s.workouts = append(r.s.workouts, *workout)
	return workout.ID, nil
}

func (r *workoutRepo) GetByID(_ context.Context, id int64) (*domain.Workout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := range r.s.workouts {
		if r.s.workouts[i].ID == id {
			w := r.s.workouts[i]
			return &w, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *workoutRepo) List(_ context.Context) ([]domain.Workout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]domain.Workout{}, r.s.workouts...), nil
}

func (r *workoutRepo) Update(_ context.Context, workout *domain.Workout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.workouts {
		if r.s.workouts[i].ID == workout.ID {
			workout.CreatedAt = r.s.workouts[i].CreatedAt
			workout.UpdatedAt = r.s.now().UTC()
			r.s.workouts[i] = *workout
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *workoutRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.workouts {
		if r.s.workouts[i].ID == id {
			r.s.workouts = append(r.s.workouts[:i], r.s.workouts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
