// Package app wires configuration, storage and services into one dashboard
// instance shared by the HTTP server and the CLI.
package app

import (
	"alcyxob/trainer-dashboard/internal/calendar"
	"alcyxob/trainer-dashboard/internal/config"
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/events"
	"alcyxob/trainer-dashboard/internal/host"
	"alcyxob/trainer-dashboard/internal/metrics"
	"alcyxob/trainer-dashboard/internal/render"
	"alcyxob/trainer-dashboard/internal/repository"
	"alcyxob/trainer-dashboard/internal/repository/memory"
	mongorepo "alcyxob/trainer-dashboard/internal/repository/mongo"
	"alcyxob/trainer-dashboard/internal/service"
	"alcyxob/trainer-dashboard/internal/storage"
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// App is a fully wired dashboard.
type App struct {
	Config   config.Config
	Location *time.Location

	Store   *memory.Store
	Bus     *events.Bus
	Builder *calendar.Builder

	Clients    service.ClientService
	Workouts   service.WorkoutService
	Planner    service.PlannerService
	Stats      service.StatsService
	Controller *service.ViewController
	Commands   *service.Commands

	Metrics   *metrics.Manager     // nil when metrics are disabled
	Registry  *prometheus.Registry // nil when metrics are disabled
	Presigner storage.Presigner    // nil unless templates live in S3

	mongoClient *mongo.Client
}

// Options overrides the clock; zero values use the wall clock.
type Options struct {
	Now       func() time.Time
	Renderers []render.Renderer
	Notifier  host.Notifier
}

// New loads the entity store from the configured source and builds every service.
func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	loc, err := cfg.Calendar.Location()
	if err != nil {
		return nil, err
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	today := func() time.Time { return domain.StartOfDay(now().In(loc)) }

	a := &App{Config: cfg, Location: loc, Bus: events.NewBus()}

	if cfg.Metrics.Enabled {
		a.Registry = prometheus.NewRegistry()
		a.Metrics = metrics.NewManager(cfg.Metrics.Namespace, cfg.Metrics.Subsystem, a.Registry)
		a.Metrics.Observe(a.Bus)
	}
	if opts.Notifier != nil {
		host.Attach(a.Bus, opts.Notifier)
	}

	source, err := a.entitySource(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Store = memory.NewStore()
	if err := a.Store.Load(ctx, source); err != nil {
		a.Close()
		return nil, fmt.Errorf("loading dashboard data: %w", err)
	}

	kv, err := a.templateStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	if p, ok := kv.(storage.Presigner); ok && cfg.Templates.Backend == config.BackendS3 {
		a.Presigner = p
	}

	a.Builder = calendar.NewBuilder(calendar.Options{
		FirstHour:          cfg.Calendar.FirstHour,
		LastHour:           cfg.Calendar.LastHour,
		MonthOverflowCap:   cfg.Calendar.MonthOverflowCap,
		UnknownClientLabel: cfg.Calendar.UnknownClientLabel,
		Location:           loc,
		Now:                now,
	})

	a.Clients = service.NewClientService(a.Store.Clients(), a.Bus, today)
	a.Workouts = service.NewWorkoutService(a.Store.Workouts(), a.Clients, a.Bus, loc, now)
	a.Planner = service.NewPlannerService(kv, now)
	a.Stats = service.NewStatsService(a.Clients, a.Workouts, a.Planner, today)
	if err := a.Workouts.RefreshNextWorkouts(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("refreshing next workout dates: %w", err)
	}

	nav, err := service.ParseNavigationMode(cfg.Calendar.Navigation)
	if err != nil {
		a.Close()
		return nil, err
	}
	renderers := append([]render.Renderer{}, opts.Renderers...)
	if a.Metrics != nil {
		renderers = append(renderers, a.Metrics)
	}
	a.Controller = service.NewViewController(a.Clients, a.Workouts, a.Builder, a.Bus, nav, renderers...)
	a.Commands = service.NewCommands(a.Bus, a.Controller)
	return a, nil
}

// Close releases the database connection, if any.
func (a *App) Close() {
	if a.mongoClient == nil {
		return
	}
	log.Println("Disconnecting MongoDB...")
	if err := mongorepo.DisconnectDB(a.mongoClient); err != nil {
		log.Errorf("Failed to disconnect MongoDB: %v", err)
	}
	a.mongoClient = nil
}

// Database connects lazily and returns the configured MongoDB database.
func (a *App) Database() (*mongo.Database, error) {
	if a.mongoClient == nil {
		client, err := mongorepo.ConnectDB(a.Config.Database.URI, a.Config.Database.ConnectTimeout)
		if err != nil {
			return nil, fmt.Errorf("connecting to MongoDB: %w", err)
		}
		a.mongoClient = client
		log.Println("Database connection established.")
	}
	return a.mongoClient.Database(a.Config.Database.Name), nil
}

func (a *App) entitySource(cfg config.Config) (repository.EntitySource, error) {
	switch cfg.Store.Source {
	case config.SourceMongo:
		db, err := a.Database()
		if err != nil {
			return nil, err
		}
		return mongorepo.NewEntitySource(db), nil
	default:
		return memory.DemoSource{}, nil
	}
}

func (a *App) templateStore(ctx context.Context, cfg config.Config) (repository.KeyValueStore, error) {
	switch cfg.Templates.Backend {
	case config.BackendMongo:
		db, err := a.Database()
		if err != nil {
			return nil, err
		}
		return storage.NewCachedStore(mongorepo.NewMongoTemplateStore(db), cfg.Templates.CacheSizeMB), nil
	case config.BackendS3:
		s3, err := storage.NewS3Store(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("initializing S3 template storage: %w", err)
		}
		return storage.NewCachedStore(s3, cfg.Templates.CacheSizeMB), nil
	default:
		return storage.NewMemoryStore(), nil
	}
}
