package api

import (
	"alcyxob/trainer-dashboard/internal/metrics"
	"alcyxob/trainer-dashboard/internal/service"
	"alcyxob/trainer-dashboard/internal/storage"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies is everything the HTTP surface needs.
type Dependencies struct {
	ClientService  service.ClientService
	WorkoutService service.WorkoutService
	PlannerService service.PlannerService
	StatsService   service.StatsService
	ViewController *service.ViewController
	Commands       *service.Commands

	Location      *time.Location
	UpcomingLimit int
	Presigner     storage.Presigner // optional

	Metrics  *metrics.Manager     // optional
	Gatherer prometheus.Gatherer // serves /metrics when set
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	router.Use(PanicRecovery(deps.Metrics), LogRequest())
	if deps.Metrics != nil {
		router.Use(RequestMetrics(deps.Metrics))
	}

	clientHandler := NewClientHandler(deps.ClientService, deps.WorkoutService)
	workoutHandler := NewWorkoutHandler(deps.WorkoutService, deps.ClientService, deps.Location)
	calendarHandler := NewCalendarHandler(deps.ViewController, deps.Location)
	plannerHandler := NewPlannerHandler(deps.PlannerService, deps.Presigner)
	dashboardHandler := NewDashboardHandler(deps.StatsService, deps.Commands, deps.Metrics, deps.UpcomingLimit)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	apiV1 := router.Group("/api/v1")
	{
		clients := apiV1.Group("/clients")
		{
			clients.GET("", clientHandler.ListClients)
			clients.POST("", clientHandler.CreateClient)
			clients.GET("/:id", clientHandler.GetClient)
			clients.PATCH("/:id/progress", clientHandler.UpdateProgress)
			clients.POST("/:id/activate", clientHandler.Activate)
			clients.POST("/:id/deactivate", clientHandler.Deactivate)
			clients.GET("/:id/workouts", clientHandler.GetClientWorkouts)
		}

		workouts := apiV1.Group("/workouts")
		{
			workouts.GET("", workoutHandler.ListWorkouts)
			workouts.POST("", workoutHandler.ScheduleWorkout)
			workouts.GET("/:id", workoutHandler.GetWorkout)
			workouts.POST("/:id/start", workoutHandler.StartWorkout)
			workouts.POST("/:id/complete", workoutHandler.CompleteWorkout)
			workouts.POST("/:id/cancel", workoutHandler.CancelWorkout)
			workouts.POST("/:id/copy", workoutHandler.CopyWorkout)
			workouts.DELETE("/:id", workoutHandler.DeleteWorkout)
		}

		cal := apiV1.Group("/calendar")
		{
			cal.GET("", calendarHandler.GetCalendar)
			cal.GET("/render", calendarHandler.Render)
			cal.POST("/next", calendarHandler.Next)
			cal.POST("/prev", calendarHandler.Prev)
			cal.POST("/today", calendarHandler.Today)
			cal.PUT("/view", calendarHandler.SetView)
			cal.PUT("/date", calendarHandler.SelectDate)
			cal.PUT("/filter", calendarHandler.SetWorkoutFilter)
			cal.PUT("/clients", calendarHandler.SetClientFilter)
		}

		apiV1.GET("/dashboard", dashboardHandler.GetDashboard)
		apiV1.GET("/stats", dashboardHandler.GetStatistics)
		apiV1.GET("/actions", dashboardHandler.ListActions)
		apiV1.POST("/actions/:action", dashboardHandler.RunAction)

		apiV1.GET("/exercises", plannerHandler.GetExercises)
		templates := apiV1.Group("/templates")
		{
			templates.GET("/generate", plannerHandler.GenerateTemplate)
			templates.GET("", plannerHandler.ListTemplates)
			templates.POST("", plannerHandler.SaveTemplate)
			templates.GET("/:id", plannerHandler.GetTemplate)
			templates.GET("/:id/download", plannerHandler.GetTemplateDownloadURL)
		}
	}
}
