package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/schoolvax/vaccine-portal/internal/app/models/dto"
	"github.com/schoolvax/vaccine-portal/internal/app/services"
	"github.com/schoolvax/vaccine-portal/internal/middleware"
	"github.com/schoolvax/vaccine-portal/internal/pkg/helpers"
)

// VaccineController handles vaccine catalog endpoints
type VaccineController struct {
	vaccineService *services.VaccineService
}

// NewVaccineController creates a new VaccineController
func NewVaccineController(vaccineService *services.VaccineService) *VaccineController {
	return &VaccineController{
		vaccineService: vaccineService,
	}
}

func parseIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID")
		errorDetail = errorDetail.WithDetails("ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// CreateVaccine adds a vaccine to the catalog
// @Summary Create a vaccine
// @Description Adds a vaccine to the catalog. Names are unique.
// @Tags vaccines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateVaccineRequest true "Vaccine information"
// @Success 201 {object} dto.APIResponse{data=dto.VaccineResponse} "Vaccine created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Vaccine name already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /vaccines [post]
func (c *VaccineController) CreateVaccine(ctx *gin.Context) {
	var req dto.CreateVaccineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid vaccine data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if detail := middleware.ValidateStruct(&req); detail != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	vaccine, err := c.vaccineService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromVaccine(vaccine),
		Timestamp: time.Now(),
	})
}

// GetVaccineByID retrieves a vaccine
// @Summary Get vaccine details
// @Description Retrieves a vaccine by ID
// @Tags vaccines
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vaccine ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.VaccineResponse} "Vaccine retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid vaccine ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Vaccine not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /vaccines/{id} [get]
func (c *VaccineController) GetVaccineByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	vaccine, err := c.vaccineService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromVaccine(vaccine),
		Timestamp: time.Now(),
	})
}

// GetAllVaccines lists vaccines
// @Summary List vaccines
// @Description Lists vaccines with an optional name filter
// @Tags vaccines
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name filter"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Vaccines retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /vaccines [get]
func (c *VaccineController) GetAllVaccines(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	vaccines, total, err := c.vaccineService.GetAll(ctx, ctx.Query("search"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.VaccineResponse, 0, len(vaccines))
	for _, vaccine := range vaccines {
		responses = append(responses, dto.FromVaccine(vaccine))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      responses,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// UpdateVaccine modifies a vaccine
// @Summary Update a vaccine
// @Description Updates a vaccine's details
// @Tags vaccines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vaccine ID" Format(int64) minimum(1)
// @Param request body dto.UpdateVaccineRequest true "Vaccine information"
// @Success 200 {object} dto.APIResponse{data=dto.VaccineResponse} "Vaccine updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Vaccine not found"
// @Failure 409 {object} dto.ErrorResponse "Vaccine name already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /vaccines/{id} [put]
func (c *VaccineController) UpdateVaccine(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateVaccineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid vaccine data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if detail := middleware.ValidateStruct(&req); detail != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	vaccine, err := c.vaccineService.Update(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromVaccine(vaccine),
		Timestamp: time.Now(),
	})
}

// DeleteVaccine removes a vaccine
// @Summary Delete a vaccine
// @Description Deletes a vaccine. Vaccines referenced by drives cannot be deleted.
// @Tags vaccines
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vaccine ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Vaccine deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid vaccine ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Vaccine not found"
// @Failure 409 {object} dto.ErrorResponse "Vaccine is in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /vaccines/{id} [delete]
func (c *VaccineController) DeleteVaccine(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.vaccineService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"message": "Vaccine deleted"},
		Timestamp: time.Now(),
	})
}
