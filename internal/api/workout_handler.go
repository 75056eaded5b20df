package api

import (
	"alcyxob/trainer-dashboard/internal/calendar"
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/filter"
	"alcyxob/trainer-dashboard/internal/service"
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves the workout book.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	clientService  service.ClientService
	loc            *time.Location
}

func NewWorkoutHandler(workoutService service.WorkoutService, clientService service.ClientService, loc *time.Location) *WorkoutHandler {
	if loc == nil {
		loc = time.Local
	}
	return &WorkoutHandler{workoutService: workoutService, clientService: clientService, loc: loc}
}

// --- DTOs ---

type ScheduleWorkoutRequest struct {
	ClientID int64  `json:"clientId" binding:"required"`
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	Time     string `json:"time" binding:"required"` // HH:MM
	Duration int    `json:"duration"`                // minutes, 0 means default
	Type     string `json:"type" binding:"required"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

type CopyWorkoutRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type WorkoutResponse struct {
	ID          int64                `json:"id"`
	ClientID    int64                `json:"clientId"`
	ClientName  string               `json:"clientName,omitempty"`
	Date        string               `json:"date"`
	Time        string               `json:"time"`
	Duration    int                  `json:"duration"`
	Type        domain.WorkoutType   `json:"type"`
	Status      domain.WorkoutStatus `json:"status"`
	Location    string               `json:"location,omitempty"`
	Notes       string               `json:"notes,omitempty"`
	CompletedAt *time.Time           `json:"completedAt,omitempty"`
}

func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	if w == nil {
		return WorkoutResponse{}
	}
	return WorkoutResponse{
		ID:          w.ID,
		ClientID:    w.ClientID,
		Date:        w.Date,
		Time:        w.Time,
		Duration:    w.DurationMinutes,
		Type:        w.Type,
		Status:      w.Status,
		Location:    w.Location,
		Notes:       w.Notes,
		CompletedAt: w.CompletedAt,
	}
}

func MapWorkoutsToResponse(workouts []domain.Workout) []WorkoutResponse {
	responses := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		responses[i] = MapWorkoutToResponse(&workouts[i])
	}
	return responses
}

// withClientNames fills ClientName from the directory.
func withClientNames(responses []WorkoutResponse, dir calendar.Directory) []WorkoutResponse {
	for i := range responses {
		if name, ok := dir.ClientName(responses[i].ClientID); ok {
			responses[i].ClientName = name
		} else {
			responses[i].ClientName = calendar.DefaultUnknownClientLabel
		}
	}
	return responses
}

// --- Handler Methods ---

// ListWorkouts answers GET /workouts?from=&to=&type=&status=&clientId=
// type and status accept comma separated lists.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	f, err := parseWorkoutFilter(c, h.loc)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	ctx := c.Request.Context()
	workouts, err := h.workoutService.List(ctx, f)
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve workouts.")
		return
	}
	dir, err := h.clientService.Directory(ctx)
	if err != nil {
		abortWithServiceError(c, err, "Failed to resolve client names.")
		return
	}
	c.JSON(http.StatusOK, withClientNames(MapWorkoutsToResponse(workouts), dir))
}

func (h *WorkoutHandler) ScheduleWorkout(c *gin.Context) {
	var req ScheduleWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	workout, err := h.workoutService.Schedule(c.Request.Context(), service.ScheduleWorkoutInput{
		ClientID:        req.ClientID,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.Duration,
		Type:            domain.WorkoutType(strings.ToLower(req.Type)),
		Location:        req.Location,
		Notes:           req.Notes,
	})
	if err != nil {
		abortWithServiceError(c, err, "Failed to schedule workout.")
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	workout, err := h.workoutService.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve workout.")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

func (h *WorkoutHandler) StartWorkout(c *gin.Context)    { h.transition(c, h.workoutService.Start) }
func (h *WorkoutHandler) CompleteWorkout(c *gin.Context) { h.transition(c, h.workoutService.Complete) }
func (h *WorkoutHandler) CancelWorkout(c *gin.Context)   { h.transition(c, h.workoutService.Cancel) }

func (h *WorkoutHandler) CopyWorkout(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req CopyWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	workout, err := h.workoutService.Copy(c.Request.Context(), id, req.Date, req.Time)
	if err != nil {
		abortWithServiceError(c, err, "Failed to copy workout.")
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.workoutService.Delete(c.Request.Context(), id); err != nil {
		abortWithServiceError(c, err, "Failed to delete workout.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkoutHandler) transition(c *gin.Context, op func(ctx context.Context, id int64) (*domain.Workout, error)) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	workout, err := op(c.Request.Context(), id)
	if err != nil {
		abortWithServiceError(c, err, "Failed to update workout status.")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// parseWorkoutFilter reads from, to, type, status and clientId query parameters.
func parseWorkoutFilter(c *gin.Context, loc *time.Location) (filter.WorkoutFilter, error) {
	var f filter.WorkoutFilter
	if from := c.Query("from"); from != "" {
		t, err := domain.ParseDate(from, loc)
		if err != nil {
			return f, err
		}
		f.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := domain.ParseDate(to, loc)
		if err != nil {
			return f, err
		}
		f.To = t
	}
	for _, raw := range splitList(c.Query("type")) {
		t := domain.WorkoutType(raw)
		if !t.Valid() {
			return f, service.ErrInvalidWorkoutType
		}
		f.Types = append(f.Types, t)
	}
	for _, raw := range splitList(c.Query("status")) {
		s := domain.WorkoutStatus(raw)
		if !s.Valid() {
			return f, errInvalidWorkoutStatus
		}
		f.Statuses = append(f.Statuses, s)
	}
	if raw := c.Query("clientId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return f, errInvalidClientID
		}
		f.ClientID = id
	}
	return f, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
