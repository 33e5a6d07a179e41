package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/schoolvax/vaccine-portal/internal/app/models/dto"
	"github.com/schoolvax/vaccine-portal/internal/app/services"
	"github.com/schoolvax/vaccine-portal/internal/middleware"
)

// DashboardController handles the aggregated statistics endpoint
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetStats returns portal-wide vaccination statistics
// @Summary Get dashboard statistics
// @Description Returns per-grade coverage, record status summary and upcoming drives for the next 30 days
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStatsResponse} "Statistics retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/stats [get]
func (c *DashboardController) GetStats(ctx *gin.Context) {
	stats, err := c.dashboardService.GetStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      stats,
		Timestamp: time.Now(),
	})
}

// GetGradeStats returns per-grade vaccination coverage
// @Summary Get grade-wise statistics
// @Description Returns student totals, vaccinated counts and coverage rate per grade
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.GradeStats} "Grade statistics retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/grades [get]
func (c *DashboardController) GetGradeStats(ctx *gin.Context) {
	stats, err := c.dashboardService.GetStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      stats.GradeStats,
		Timestamp: time.Now(),
	})
}

// GetStatusSummary returns the record lifecycle breakdown
// @Summary Get record status summary
// @Description Returns record counts per status and the overall completion rate
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StatusSummary} "Status summary retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/status [get]
func (c *DashboardController) GetStatusSummary(ctx *gin.Context) {
	stats, err := c.dashboardService.GetStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      stats.StatusSummary,
		Timestamp: time.Now(),
	})
}

// GetUpcomingDrives returns active drives scheduled in the next 30 days
// @Summary Get upcoming drives summary
// @Description Returns drive and dose totals for active drives within the next 30 days
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UpcomingDrivesSummary} "Upcoming drives retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/upcoming-drives [get]
func (c *DashboardController) GetUpcomingDrives(ctx *gin.Context) {
	stats, err := c.dashboardService.GetStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      stats.UpcomingDrives,
		Timestamp: time.Now(),
	})
}
