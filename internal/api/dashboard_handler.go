package api

import (
	"alcyxob/trainer-dashboard/internal/metrics"
	"alcyxob/trainer-dashboard/internal/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the home summary, statistics and quick actions.
type DashboardHandler struct {
	statsService  service.StatsService
	commands      *service.Commands
	metrics       *metrics.Manager
	upcomingLimit int
}

func NewDashboardHandler(statsService service.StatsService, commands *service.Commands, m *metrics.Manager, upcomingLimit int) *DashboardHandler {
	if upcomingLimit <= 0 {
		upcomingLimit = service.DefaultUpcomingLimit
	}
	return &DashboardHandler{statsService: statsService, commands: commands, metrics: m, upcomingLimit: upcomingLimit}
}

// GetDashboard answers GET /dashboard?limit=
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	limit := h.upcomingLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			abortWithError(c, http.StatusBadRequest, "Invalid limit.")
			return
		}
		limit = n
	}
	d, err := h.statsService.Dashboard(c.Request.Context(), limit)
	if err != nil {
		abortWithServiceError(c, err, "Failed to build dashboard.")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DashboardHandler) GetStatistics(c *gin.Context) {
	stats, err := h.statsService.Statistics(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err, "Failed to compute statistics.")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) ListActions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"actions": h.commands.Actions()})
}

// RunAction answers POST /actions/:action. The optional JSON body is a flat
// map of string arguments, e.g. {"view": "week"} for calendar.view.
func (h *DashboardHandler) RunAction(c *gin.Context) {
	action := c.Param("action")
	args := map[string]string{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&args); err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}
	res, err := h.commands.Run(c.Request.Context(), action, args)
	if h.metrics != nil {
		h.metrics.CommandRun(action, err)
	}
	if err != nil {
		abortWithServiceError(c, err, "Failed to run action.")
		return
	}
	c.JSON(http.StatusOK, res)
}
