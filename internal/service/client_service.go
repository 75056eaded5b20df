package service

import (
	"alcyxob/trainer-dashboard/internal/calendar"
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/events"
	"alcyxob/trainer-dashboard/internal/filter"
	"alcyxob/trainer-dashboard/internal/repository"
	"context"
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrClientNotFound    = errors.New("client not found")
	ErrClientNameMissing = errors.New("first name and last name are required")
)

// RegisterClientInput carries the fields of the "new client" form.
type RegisterClientInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	GoalKey   string
}

// ClientService manages the trainer's client list.
type ClientService interface {
	Register(ctx context.Context, in RegisterClientInput) (*domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context, f filter.ClientFilter) ([]domain.Client, error)
	Select(ctx context.Context, id int64) (*domain.Client, error)
	UpdateProgress(ctx context.Context, id int64, percent int) (*domain.Client, error)
	SetActive(ctx context.Context, id int64, active bool) (*domain.Client, error)
	RefreshNextWorkout(ctx context.Context, id int64, workouts []domain.Workout) error
	Directory(ctx context.Context) (calendar.Directory, error)
}

// clientService implements the ClientService interface.
type clientService struct {
	clientRepo repository.ClientRepository
	bus        *events.Bus
	today      func() time.Time
}

// NewClientService creates a new instance of clientService.
// today returns midnight of the current day; it drives nextWorkoutDate.
func NewClientService(clientRepo repository.ClientRepository, bus *events.Bus, today func() time.Time) ClientService {
	if today == nil {
		today = func() time.Time { return domain.StartOfDay(time.Now()) }
	}
	return &clientService{clientRepo: clientRepo, bus: bus, today: today}
}

// Register creates an active client with initials avatar and zero progress.
func (s *clientService) Register(ctx context.Context, in RegisterClientInput) (*domain.Client, error) {
	first, last := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return nil, ErrClientNameMissing
	}
	name := first + " " + last

	client := &domain.Client{
		Name:     name,
		Avatar:   domain.Initials(name),
		Goal:     domain.GoalText(in.GoalKey),
		IsActive: true,
		Email:    strings.TrimSpace(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
	}
	id, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		return nil, err
	}
	log.Infof("Registered client %d (%s)", id, name)
	s.bus.Publish(events.ClientRegistered{ClientID: id, Name: name})
	return s.GetByID(ctx, id)
}

func (s *clientService) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

// List returns the clients passing f, in insertion order.
func (s *clientService) List(ctx context.Context, f filter.ClientFilter) ([]domain.Client, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Clients(clients, f), nil
}

// Select looks the client up for the details card and announces the selection.
func (s *clientService) Select(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.bus.Publish(events.ClientSelected{ClientID: id})
	return client, nil
}

func (s *clientService) UpdateProgress(ctx context.Context, id int64, percent int) (*domain.Client, error) {
	return s.mutate(ctx, id, func(c *domain.Client) {
		c.ProgressPercent = domain.ClampProgress(percent)
	})
}

func (s *clientService) SetActive(ctx context.Context, id int64, active bool) (*domain.Client, error) {
	return s.mutate(ctx, id, func(c *domain.Client) {
		c.IsActive = active
	})
}

// RefreshNextWorkout sets the client's nextWorkoutDate to the earliest
// scheduled workout on or after today, or clears it.
func (s *clientService) RefreshNextWorkout(ctx context.Context, id int64, workouts []domain.Workout) error {
	today := domain.FormatDate(s.today())
	next := ""
	for _, w := range workouts {
		if w.ClientID != id || w.Status != domain.StatusScheduled || w.Date < today {
			continue
		}
		if next == "" || w.Date < next {
			next = w.Date
		}
	}

	client, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client.NextWorkoutDate == next {
		return nil
	}
	client.NextWorkoutDate = next
	return s.clientRepo.Update(ctx, client)
}

// Directory snapshots id -> name for label resolution in calendar cells.
func (s *clientService) Directory(ctx context.Context) (calendar.Directory, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}
	return calendar.DirectoryFunc(func(id int64) (string, bool) {
		name, ok := names[id]
		return name, ok
	}), nil
}

func (s *clientService) mutate(ctx context.Context, id int64, apply func(*domain.Client)) (*domain.Client, error) {
	client, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(client)
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	s.bus.Publish(events.ClientUpdated{ClientID: id})
	return s.GetByID(ctx, id)
}
