package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/schoolvax/vaccine-portal/internal/app/models/dto"
	"github.com/schoolvax/vaccine-portal/internal/pkg/grades"
)

// GradeController serves the static grade catalogue
type GradeController struct{}

// NewGradeController creates a new GradeController
func NewGradeController() *GradeController {
	return &GradeController{}
}

// GetGrades lists the grade labels the portal accepts
// @Summary List grades
// @Description Returns the school grade labels in teaching order
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]string} "Grades retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /grades [get]
func (c *GradeController) GetGrades(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      grades.Standard(),
		Timestamp: time.Now(),
	})
}
