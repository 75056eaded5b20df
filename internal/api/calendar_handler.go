package api

import (
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/filter"
	"alcyxob/trainer-dashboard/internal/render"
	"alcyxob/trainer-dashboard/internal/service"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CalendarHandler exposes the view controller. Every response is the JSON
// projection of the snapshot the controller pushed to its displays.
type CalendarHandler struct {
	vc  *service.ViewController
	loc *time.Location
}

func NewCalendarHandler(vc *service.ViewController, loc *time.Location) *CalendarHandler {
	if loc == nil {
		loc = time.Local
	}
	return &CalendarHandler{vc: vc, loc: loc}
}

type SetViewRequest struct {
	View string `json:"view" binding:"required"` // month, week or day
}

type SelectDateRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

// SetFiltersRequest replaces the client filter of the clients panel.
type SetFiltersRequest struct {
	Search *string `json:"search"`
	Status *string `json:"status"`
}

func (h *CalendarHandler) GetCalendar(c *gin.Context) {
	snap, err := h.vc.Snapshot(c.Request.Context())
	h.respond(c, snap, err)
}

func (h *CalendarHandler) Next(c *gin.Context)  { h.navigate(c, h.vc.Next) }
func (h *CalendarHandler) Prev(c *gin.Context)  { h.navigate(c, h.vc.Prev) }
func (h *CalendarHandler) Today(c *gin.Context) { h.navigate(c, h.vc.Today) }

func (h *CalendarHandler) SetView(c *gin.Context) {
	var req SetViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	snap, err := h.vc.SetView(c.Request.Context(), domain.Granularity(strings.ToLower(req.View)))
	h.respond(c, snap, err)
}

// SelectDate opens the day view of the requested date.
func (h *CalendarHandler) SelectDate(c *gin.Context) {
	var req SelectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	d, err := domain.ParseDate(req.Date, h.loc)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	snap, err := h.vc.SelectDate(c.Request.Context(), d)
	h.respond(c, snap, err)
}

// SetWorkoutFilter narrows the calendar; it takes the same query as GET /workouts.
func (h *CalendarHandler) SetWorkoutFilter(c *gin.Context) {
	f, err := parseWorkoutFilter(c, h.loc)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	snap, err := h.vc.SetWorkoutFilter(c.Request.Context(), f)
	h.respond(c, snap, err)
}

func (h *CalendarHandler) SetClientFilter(c *gin.Context) {
	var req SetFiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	ctx := c.Request.Context()
	var (
		snap render.Snapshot
		err  error
	)
	if req.Status != nil {
		status, perr := filter.ParseStatusFilter(*req.Status)
		if perr != nil {
			abortWithError(c, http.StatusBadRequest, perr.Error())
			return
		}
		if snap, err = h.vc.SetClientStatus(ctx, status); err != nil {
			h.respond(c, snap, err)
			return
		}
	}
	if req.Search != nil {
		snap, err = h.vc.SetClientSearch(ctx, strings.TrimSpace(*req.Search))
	} else if req.Status == nil {
		snap, err = h.vc.Snapshot(ctx)
	}
	h.respond(c, snap, err)
}

// Render answers GET /calendar/render?view=&anchor= without changing the
// controller state.
func (h *CalendarHandler) Render(c *gin.Context) {
	g := domain.Granularity(strings.ToLower(c.DefaultQuery("view", string(domain.GranularityMonth))))
	anchor := h.vc.CurrentDate()
	if raw := c.Query("anchor"); raw != "" {
		d, err := domain.ParseDate(raw, h.loc)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		anchor = d
	}
	grid, err := h.vc.RenderAt(c.Request.Context(), g, anchor)
	if err != nil {
		abortWithServiceError(c, err, "Failed to render calendar.")
		return
	}
	c.JSON(http.StatusOK, grid)
}

func (h *CalendarHandler) navigate(c *gin.Context, op func(context.Context) (render.Snapshot, error)) {
	snap, err := op(c.Request.Context())
	h.respond(c, snap, err)
}

func (h *CalendarHandler) respond(c *gin.Context, snap render.Snapshot, err error) {
	if err != nil {
		abortWithServiceError(c, err, "Failed to update calendar.")
		return
	}
	c.JSON(http.StatusOK, snap)
}
