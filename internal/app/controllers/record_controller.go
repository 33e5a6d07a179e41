package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/schoolvax/vaccine-portal/internal/app/models"
	"github.com/schoolvax/vaccine-portal/internal/app/models/dto"
	"github.com/schoolvax/vaccine-portal/internal/app/repositories"
	"github.com/schoolvax/vaccine-portal/internal/app/services"
	"github.com/schoolvax/vaccine-portal/internal/middleware"
	"github.com/schoolvax/vaccine-portal/internal/pkg/helpers"
)

// RecordController handles vaccination record endpoints
type RecordController struct {
	recordService *services.RecordService
}

// NewRecordController creates a new RecordController
func NewRecordController(recordService *services.RecordService) *RecordController {
	return &RecordController{
		recordService: recordService,
	}
}

// recordFilterFromQuery builds a record filter from query parameters.
// Shared by the listing and report endpoints.
func recordFilterFromQuery(ctx *gin.Context) (repositories.RecordFilter, bool) {
	filter := repositories.RecordFilter{
		StudentID: ctx.Query("studentId"),
		Status:    models.RecordStatus(ctx.Query("status")),
	}
	if driveIDStr := ctx.Query("driveId"); driveIDStr != "" {
		driveID, err := strconv.ParseInt(driveIDStr, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid driveId filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return filter, false
		}
		filter.DriveID = &driveID
	}
	if vaccineIDStr := ctx.Query("vaccineId"); vaccineIDStr != "" {
		vaccineID, err := strconv.ParseInt(vaccineIDStr, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid vaccineId filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return filter, false
		}
		filter.VaccineID = &vaccineID
	}
	if fromStr := ctx.Query("from"); fromStr != "" {
		from, err := helpers.ParseDate(fromStr)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return filter, false
		}
		filter.VaccinatedFrom = &from
	}
	if toStr := ctx.Query("to"); toStr != "" {
		to, err := helpers.ParseDate(toStr)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return filter, false
		}
		end := to.AddDate(0, 0, 1).Add(-time.Second)
		filter.VaccinatedTo = &end
	}
	return filter, true
}

// CreateRecord records a vaccination dose
// @Summary Record a dose
// @Description Records a dose for a student under a drive. Dose numbers are strictly increasing per student and drive.
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateVaccinationRecordRequest true "Record information"
// @Success 201 {object} dto.APIResponse{data=dto.VaccinationRecordResponse} "Record created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data, future date or dose out of sequence"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student or drive not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate dose"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /records [post]
func (c *RecordController) CreateRecord(ctx *gin.Context) {
	var req dto.CreateVaccinationRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid record data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if detail := middleware.ValidateStruct(&req); detail != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	record, err := c.recordService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromVaccinationRecord(record),
		Timestamp: time.Now(),
	})
}

// GetRecordByID retrieves a record
// @Summary Get record details
// @Description Retrieves a vaccination record by ID
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.VaccinationRecordResponse} "Record retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid record ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /records/{id} [get]
func (c *RecordController) GetRecordByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	record, err := c.recordService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromVaccinationRecord(record),
		Timestamp: time.Now(),
	})
}

// GetAllRecords lists records
// @Summary List records
// @Description Lists vaccination records with optional student, drive, vaccine, status and date range filters
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param studentId query string false "Student filter"
// @Param driveId query int false "Drive filter"
// @Param vaccineId query int false "Vaccine filter"
// @Param status query string false "Status filter" Enums(SCHEDULED, COMPLETED, CANCELLED)
// @Param from query string false "Start of vaccination date range (yyyy-MM-dd)"
// @Param to query string false "End of vaccination date range (yyyy-MM-dd)"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Records retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /records [get]
func (c *RecordController) GetAllRecords(ctx *gin.Context) {
	filter, ok := recordFilterFromQuery(ctx)
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	records, total, err := c.recordService.GetAll(ctx, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.VaccinationRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, dto.FromVaccinationRecord(record))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      responses,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// UpdateRecord applies a partial update to a record
// @Summary Update a record
// @Description Partially updates a record. All supplied fields are validated before any is applied.
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID" Format(int64) minimum(1)
// @Param request body dto.UpdateVaccinationRecordRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.VaccinationRecordResponse} "Record updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or illegal status transition"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /records/{id} [patch]
func (c *RecordController) UpdateRecord(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateVaccinationRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid record data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if detail := middleware.ValidateStruct(&req); detail != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	record, err := c.recordService.Update(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromVaccinationRecord(record),
		Timestamp: time.Now(),
	})
}

// DeleteRecord removes a record
// @Summary Delete a record
// @Description Permanently deletes a vaccination record
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Record deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid record ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /records/{id} [delete]
func (c *RecordController) DeleteRecord(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.recordService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"message": "Record deleted"},
		Timestamp: time.Now(),
	})
}
