package main

import (
	"alcyxob/trainer-dashboard/internal/api"
	"alcyxob/trainer-dashboard/internal/app"
	"alcyxob/trainer-dashboard/internal/config"
	"alcyxob/trainer-dashboard/internal/host"
	"alcyxob/trainer-dashboard/internal/logging"
	mongorepo "alcyxob/trainer-dashboard/internal/repository/mongo"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on config.yaml and environment")
	}

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.Stdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	log.Println("Starting Trainer Dashboard Server...")
	log.Infof("store source: %s, template backend: %s, timezone: %s",
		cfg.Store.Source, cfg.Templates.Backend, cfg.Calendar.Timezone)

	// --- Wiring ---
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	dashboard, err := app.New(ctx, cfg, app.Options{Notifier: host.LogNotifier{}})
	cancel()
	if err != nil {
		log.Fatalf("FATAL: Could not start dashboard: %v", err)
	}
	defer dashboard.Close()

	if cfg.Store.Source == config.SourceMongo {
		db, err := dashboard.Database()
		if err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		go func() { // Run index creation in background
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			mongorepo.NewEntitySource(db).EnsureIndexes(ctx)
			log.Println("Index creation process completed.")
		}()
	}

	// --- Initialize Gin Engine ---
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	var gatherer prometheus.Gatherer
	if dashboard.Registry != nil {
		gatherer = dashboard.Registry
	}
	api.SetupRoutes(router, api.Dependencies{
		ClientService:  dashboard.Clients,
		WorkoutService: dashboard.Workouts,
		PlannerService: dashboard.Planner,
		StatsService:   dashboard.Stats,
		ViewController: dashboard.Controller,
		Commands:       dashboard.Commands,
		Location:       dashboard.Location,
		UpcomingLimit:  cfg.Calendar.UpcomingLimit,
		Presigner:      dashboard.Presigner,
		Metrics:        dashboard.Metrics,
		Gatherer:       gatherer,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
