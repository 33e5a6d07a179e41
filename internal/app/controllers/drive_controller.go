package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/schoolvax/vaccine-portal/internal/app/models"
	"github.com/schoolvax/vaccine-portal/internal/app/models/dto"
	"github.com/schoolvax/vaccine-portal/internal/app/repositories"
	"github.com/schoolvax/vaccine-portal/internal/app/services"
	"github.com/schoolvax/vaccine-portal/internal/middleware"
	"github.com/schoolvax/vaccine-portal/internal/pkg/helpers"
)

// DriveController handles vaccination drive endpoints
type DriveController struct {
	driveService *services.DriveService
}

// NewDriveController creates a new DriveController
func NewDriveController(driveService *services.DriveService) *DriveController {
	return &DriveController{
		driveService: driveService,
	}
}

// CreateDrive schedules a vaccination drive
// @Summary Schedule a drive
// @Description Schedules a drive. Drives need 15 days of lead time and must not conflict with drives for overlapping grades within one day.
// @Tags drives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateVaccinationDriveRequest true "Drive information"
// @Success 201 {object} dto.APIResponse{data=dto.VaccinationDriveResponse} "Drive scheduled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or lead time violated"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Vaccine not found"
// @Failure 409 {object} dto.ErrorResponse "Conflicting drive"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /drives [post]
func (c *DriveController) CreateDrive(ctx *gin.Context) {
	var req dto.CreateVaccinationDriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid drive data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if detail := middleware.ValidateStruct(&req); detail != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	drive, err := c.driveService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromVaccinationDrive(drive),
		Timestamp: time.Now(),
	})
}

// GetDriveByID retrieves a drive
// @Summary Get drive details
// @Description Retrieves a drive by ID
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.VaccinationDriveResponse} "Drive retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid drive ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /drives/{id} [get]
func (c *DriveController) GetDriveByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	drive, err := c.driveService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromVaccinationDrive(drive),
		Timestamp: time.Now(),
	})
}

// GetAllDrives lists drives
// @Summary List drives
// @Description Lists drives with optional vaccine, status, date range and active filters
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param vaccineId query int false "Vaccine filter"
// @Param status query string false "Status filter" Enums(SCHEDULED, COMPLETED, CANCELLED)
// @Param grade query string false "Only drives applicable to this grade"
// @Param from query string false "Start of date range (yyyy-MM-dd)"
// @Param to query string false "End of date range (yyyy-MM-dd)"
// @Param active query bool false "Active filter"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Drives retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /drives [get]
func (c *DriveController) GetAllDrives(ctx *gin.Context) {
	filter := repositories.DriveFilter{
		Status: models.DriveStatus(ctx.Query("status")),
		Grade:  strings.TrimSpace(ctx.Query("grade")),
	}
	if vaccineIDStr := ctx.Query("vaccineId"); vaccineIDStr != "" {
		vaccineID, err := strconv.ParseInt(vaccineIDStr, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid vaccineId filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.VaccineID = &vaccineID
	}
	if fromStr := ctx.Query("from"); fromStr != "" {
		from, err := helpers.ParseDate(fromStr)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		filter.From = &from
	}
	if toStr := ctx.Query("to"); toStr != "" {
		to, err := helpers.ParseDate(toStr)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		end := to.AddDate(0, 0, 1).Add(-time.Second)
		filter.To = &end
	}
	if activeStr := ctx.Query("active"); activeStr != "" {
		active := activeStr == "true"
		filter.IsActive = &active
	}
	page, size := helpers.ParsePaginationParams(ctx)

	drives, total, err := c.driveService.GetAll(ctx, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.VaccinationDriveResponse, 0, len(drives))
	for _, drive := range drives {
		responses = append(responses, dto.FromVaccinationDrive(drive))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      responses,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// UpdateDrive reschedules or edits a drive
// @Summary Update a drive
// @Description Updates a drive. Drives whose date has passed are immutable.
// @Tags drives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID" Format(int64) minimum(1)
// @Param request body dto.UpdateVaccinationDriveRequest true "Drive information"
// @Success 200 {object} dto.APIResponse{data=dto.VaccinationDriveResponse} "Drive updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data, lead time violated or past drive"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Failure 409 {object} dto.ErrorResponse "Conflicting drive"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /drives/{id} [put]
func (c *DriveController) UpdateDrive(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateVaccinationDriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid drive data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if detail := middleware.ValidateStruct(&req); detail != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	drive, err := c.driveService.Update(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromVaccinationDrive(drive),
		Timestamp: time.Now(),
	})
}

// DeleteDrive deactivates a drive
// @Summary Deactivate a drive
// @Description Soft deletes a drive. Its records are kept.
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Drive deactivated"
// @Failure 400 {object} dto.ErrorResponse "Invalid drive ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /drives/{id} [delete]
func (c *DriveController) DeleteDrive(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.driveService.Deactivate(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"message": "Drive deactivated"},
		Timestamp: time.Now(),
	})
}
