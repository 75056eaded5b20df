package repository

import (
	"alcyxob/trainer-dashboard/internal/domain"
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
	ErrInvalidInput = RepositoryError("invalid input")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ClientRepository holds the trainer's clients. List preserves insertion order.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
}

// WorkoutRepository holds scheduled workouts. List preserves insertion order.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Workout, error)
	List(ctx context.Context) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id int64) error
}

// EntitySource loads clients and workouts once, before the dashboard starts serving.
type EntitySource interface {
	LoadClients(ctx context.Context) ([]domain.Client, error)
	LoadWorkouts(ctx context.Context) ([]domain.Workout, error)
}

// KeyValueStore is the opaque store used for saved workout templates.
// Load reports found=false when the key is absent.
type KeyValueStore interface {
	Load(ctx context.Context, key string) (value []byte, found bool, err error)
	Save(ctx context.Context, key string, value []byte) error
}
