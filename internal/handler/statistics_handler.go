package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	managers := middleware.RequireRole(model.RoleAdmin, model.RoleManager)
	stats := router.Group("/api/statistics")
	{
		stats.GET("/dashboard", managers, h.Dashboard)
		stats.GET("/branches", managers, h.CompareBranches)
	}
}

// Dashboard returns revenue, appointment and stock metrics over a range
// @Summary      Dashboard statistics
// @Description  Aggregates revenue, appointment counts by status and low stock items; defaults to the current month
// @Tags         statistics
// @Security     BearerAuth
// @Produce      json
// @Param        branch_id  query     int     false  "Branch filter"
// @Param        from       query     string  false  "Range start (RFC3339 or YYYY-MM-DD)"
// @Param        to         query     string  false  "Range end"
// @Success      200  {object}  response.Response{data=model.DashboardStats}
// @Failure      500  {object}  response.Response
// @Router       /api/statistics/dashboard [get]
func (h *StatisticsHandler) Dashboard(c *gin.Context) {
	from, to := queryDateRange(c)
	stats, err := h.statisticsService.Dashboard(c.Request.Context(), queryBranchID(c), from, to)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// CompareBranches returns per-branch partitions plus the combined view
// @Summary      Branch comparison
// @Description  One partition per active branch; records without a branch count toward every partition
// @Tags         statistics
// @Security     BearerAuth
// @Produce      json
// @Param        from  query     string  false  "Range start"
// @Param        to    query     string  false  "Range end"
// @Success      200  {object}  response.Response{data=model.BranchComparison}
// @Failure      500  {object}  response.Response
// @Router       /api/statistics/branches [get]
func (h *StatisticsHandler) CompareBranches(c *gin.Context) {
	from, to := queryDateRange(c)
	comparison, err := h.statisticsService.CompareBranches(c.Request.Context(), from, to)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, comparison))
}
