package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/schoolvax/vaccine-portal/internal/app/services"
	"github.com/schoolvax/vaccine-portal/internal/middleware"
)

// ReportController handles report download endpoints
type ReportController struct {
	exportService *services.ExportService
}

// NewReportController creates a new ReportController
func NewReportController(exportService *services.ExportService) *ReportController {
	return &ReportController{
		exportService: exportService,
	}
}

func reportFilename(extension string) string {
	return fmt.Sprintf("vaccination-report-%s.%s", time.Now().Format("2006-01-02"), extension)
}

// DownloadCSV streams the filtered records as a CSV file
// @Summary Download CSV report
// @Description Generates a CSV report of vaccination records matching the filters
// @Tags reports
// @Produce text/csv
// @Security BearerAuth
// @Param studentId query string false "Student filter"
// @Param driveId query int false "Drive filter"
// @Param vaccineId query int false "Vaccine filter"
// @Param status query string false "Status filter" Enums(SCHEDULED, COMPLETED, CANCELLED)
// @Param from query string false "Start of vaccination date range (yyyy-MM-dd)"
// @Param to query string false "End of vaccination date range (yyyy-MM-dd)"
// @Success 200 {file} file "CSV report"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/records.csv [get]
func (c *ReportController) DownloadCSV(ctx *gin.Context) {
	filter, ok := recordFilterFromQuery(ctx)
	if !ok {
		return
	}

	data, err := c.exportService.RecordsCSV(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportFilename("csv")))
	ctx.Data(http.StatusOK, "text/csv", data)
}

// DownloadStudentsCSV streams the active student roster as a CSV file
// @Summary Download student roster
// @Description Generates a CSV export of all active students
// @Tags reports
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file "CSV export"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/students.csv [get]
func (c *ReportController) DownloadStudentsCSV(ctx *gin.Context) {
	data, err := c.exportService.StudentsCSV(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := fmt.Sprintf("students-%s.csv", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv", data)
}

// DownloadXLSX streams the filtered records as an XLSX workbook
// @Summary Download XLSX report
// @Description Generates an XLSX report of vaccination records matching the filters
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param studentId query string false "Student filter"
// @Param driveId query int false "Drive filter"
// @Param vaccineId query int false "Vaccine filter"
// @Param status query string false "Status filter" Enums(SCHEDULED, COMPLETED, CANCELLED)
// @Param from query string false "Start of vaccination date range (yyyy-MM-dd)"
// @Param to query string false "End of vaccination date range (yyyy-MM-dd)"
// @Success 200 {file} file "XLSX report"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/records.xlsx [get]
func (c *ReportController) DownloadXLSX(ctx *gin.Context) {
	filter, ok := recordFilterFromQuery(ctx)
	if !ok {
		return
	}

	data, err := c.exportService.RecordsXLSX(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportFilename("xlsx")))
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
