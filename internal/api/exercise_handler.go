package api

import (
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/service"
	"alcyxob/trainer-dashboard/internal/storage"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// PlannerHandler holds the planner service dependency.
type PlannerHandler struct {
	plannerService service.PlannerService
	presigner      storage.Presigner // nil when the template backend cannot hand out links
}

// NewPlannerHandler creates a new PlannerHandler.
func NewPlannerHandler(plannerService service.PlannerService, presigner storage.Presigner) *PlannerHandler {
	return &PlannerHandler{plannerService: plannerService, presigner: presigner}
}

// --- DTOs for API (Data Transfer Objects) ---

// PlannedExerciseRequest prescribes one library exercise.
type PlannedExerciseRequest struct {
	ExerciseID  int    `json:"exerciseId" binding:"required"`
	Sets        int    `json:"sets" binding:"omitempty,min=1"`
	Reps        string `json:"reps"`
	Weight      string `json:"weight"`
	RestSeconds int    `json:"restSeconds" binding:"omitempty,min=0"`
	Notes       string `json:"notes"`
}

// SaveTemplateRequest defines the expected JSON for saving a workout plan.
// Sending an existing id overwrites that template.
type SaveTemplateRequest struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name" binding:"required"`
	Type      string                   `json:"type" binding:"required"`
	Level     string                   `json:"level"`
	ClientID  *int64                   `json:"clientId"`
	Exercises []PlannedExerciseRequest `json:"exercises" binding:"dive"`
}

type DownloadLinkResponse struct {
	URL string `json:"url"`
}

// --- Handler Methods ---

// GetExercises answers GET /exercises?category=
func (h *PlannerHandler) GetExercises(c *gin.Context) {
	category := domain.ExerciseCategory(strings.ToLower(c.Query("category")))
	exercises, err := h.plannerService.Exercises(category)
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve exercises.")
		return
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	c.JSON(http.StatusOK, exercises)
}

// GenerateTemplate answers GET /templates/generate?type=&level= with an unsaved plan.
func (h *PlannerHandler) GenerateTemplate(c *gin.Context) {
	t := domain.WorkoutType(strings.ToLower(c.Query("type")))
	level := domain.TemplateLevel(strings.ToLower(c.Query("level")))
	plan, err := h.plannerService.GenerateTemplate(t, level)
	if err != nil {
		abortWithServiceError(c, err, "Failed to generate template.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlannerHandler) SaveTemplate(c *gin.Context) {
	var req SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	plan := &domain.WorkoutTemplate{
		ID:        req.ID,
		Name:      strings.TrimSpace(req.Name),
		Type:      domain.WorkoutType(strings.ToLower(req.Type)),
		Level:     domain.TemplateLevel(strings.ToLower(req.Level)),
		ClientID:  req.ClientID,
		Exercises: []domain.PlannedExercise{},
	}
	for _, ex := range req.Exercises {
		err := h.plannerService.AddExercise(plan, service.PlanExerciseInput{
			ExerciseID:  ex.ExerciseID,
			Sets:        ex.Sets,
			Reps:        ex.Reps,
			Weight:      ex.Weight,
			RestSeconds: ex.RestSeconds,
			Notes:       ex.Notes,
		})
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	saved, err := h.plannerService.SaveTemplate(c.Request.Context(), plan)
	if err != nil {
		abortWithServiceError(c, err, "Failed to save template.")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *PlannerHandler) ListTemplates(c *gin.Context) {
	templates, err := h.plannerService.ListTemplates(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve templates.")
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *PlannerHandler) GetTemplate(c *gin.Context) {
	t, err := h.plannerService.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve template.")
		return
	}
	c.JSON(http.StatusOK, t)
}

// GetTemplateDownloadURL hands out a temporary link to the stored template
// when the backend is object storage.
func (h *PlannerHandler) GetTemplateDownloadURL(c *gin.Context) {
	ctx := c.Request.Context()
	t, err := h.plannerService.GetTemplate(ctx, c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve template.")
		return
	}
	if h.presigner == nil {
		abortWithServiceError(c, storage.ErrPresignUnsupported, "")
		return
	}
	url, err := h.presigner.PresignedDownloadURL(ctx, service.TemplateKey(t.ID), storage.DefaultPresignedURLExpiry)
	if err != nil {
		abortWithServiceError(c, err, "Failed to create download link.")
		return
	}
	c.JSON(http.StatusOK, DownloadLinkResponse{URL: url})
}
