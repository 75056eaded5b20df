// internal/api/client_handler.go
package api

import (
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/filter"
	"alcyxob/trainer-dashboard/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clientService  service.ClientService
	workoutService service.WorkoutService
}

func NewClientHandler(clientService service.ClientService, workoutService service.WorkoutService) *ClientHandler {
	return &ClientHandler{clientService: clientService, workoutService: workoutService}
}

// --- DTOs ---

// CreateClientRequest is the "new client" form.
type CreateClientRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	Goal      string `json:"goal"` // goal key, e.g. "weight_loss"
}

// UpdateProgressRequest sets the client's progress; values outside 0..100 are clamped.
type UpdateProgressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

type ClientResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Avatar          string    `json:"avatar"`
	Goal            string    `json:"goal"`
	Progress        int       `json:"progress"`
	IsActive        bool      `json:"isActive"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	NextWorkoutDate string    `json:"nextWorkoutDate,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func MapClientToResponse(c *domain.Client) ClientResponse {
	if c == nil {
		return ClientResponse{}
	}
	return ClientResponse{
		ID:              c.ID,
		Name:            c.Name,
		Avatar:          c.Avatar,
		Goal:            c.Goal,
		Progress:        c.ProgressPercent,
		IsActive:        c.IsActive,
		Email:           c.Email,
		Phone:           c.Phone,
		NextWorkoutDate: c.NextWorkoutDate,
		CreatedAt:       c.CreatedAt,
	}
}

func MapClientsToResponse(clients []domain.Client) []ClientResponse {
	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = MapClientToResponse(&clients[i])
	}
	return responses
}

// --- Handler Methods ---

// ListClients answers GET /clients?search=&status=
func (h *ClientHandler) ListClients(c *gin.Context) {
	status, err := filter.ParseStatusFilter(c.Query("status"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	clients, err := h.clientService.List(c.Request.Context(), filter.ClientFilter{
		SearchTerm: c.Query("search"),
		Status:     status,
	})
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve clients.")
		return
	}
	c.JSON(http.StatusOK, MapClientsToResponse(clients))
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	client, err := h.clientService.Register(c.Request.Context(), service.RegisterClientInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		GoalKey:   req.Goal,
	})
	if err != nil {
		abortWithServiceError(c, err, "Failed to register client.")
		return
	}
	c.JSON(http.StatusCreated, MapClientToResponse(client))
}

// GetClient returns the details card and marks the client as selected.
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	client, err := h.clientService.Select(c.Request.Context(), id)
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve client.")
		return
	}
	c.JSON(http.StatusOK, MapClientToResponse(client))
}

func (h *ClientHandler) UpdateProgress(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	client, err := h.clientService.UpdateProgress(c.Request.Context(), id, *req.Progress)
	if err != nil {
		abortWithServiceError(c, err, "Failed to update progress.")
		return
	}
	c.JSON(http.StatusOK, MapClientToResponse(client))
}

func (h *ClientHandler) Activate(c *gin.Context)   { h.setActive(c, true) }
func (h *ClientHandler) Deactivate(c *gin.Context) { h.setActive(c, false) }

func (h *ClientHandler) setActive(c *gin.Context, active bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	client, err := h.clientService.SetActive(c.Request.Context(), id, active)
	if err != nil {
		abortWithServiceError(c, err, "Failed to update client.")
		return
	}
	c.JSON(http.StatusOK, MapClientToResponse(client))
}

// GetClientWorkouts returns the client's workout history, newest first.
func (h *ClientHandler) GetClientWorkouts(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	workouts, err := h.workoutService.ClientHistory(c.Request.Context(), id)
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve workouts.")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutsToResponse(workouts))
}
