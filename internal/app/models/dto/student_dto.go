package dto

import (
	"time"

	"github.com/schoolvax/vaccine-portal/internal/app/models"
)

// CreateStudentRequest represents the request to register a student.
// The roll number is generated server-side and must not be supplied.
type CreateStudentRequest struct {
	Name          string `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Grade         string `json:"grade" binding:"required" validate:"required"`
	DateOfBirth   string `json:"dateOfBirth" binding:"required" validate:"required"` // yyyy-MM-dd
	Gender        string `json:"gender" binding:"required" validate:"required,oneof=M F OTHER"`
	ParentName    string `json:"parentName,omitempty"`
	ParentEmail   string `json:"parentEmail,omitempty" validate:"omitempty,email"`
	ContactNumber string `json:"contactNumber,omitempty"`
	Address       string `json:"address,omitempty"`
}

// UpdateStudentRequest represents the request to update a student
type UpdateStudentRequest struct {
	Name          string `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Grade         string `json:"grade" binding:"required" validate:"required"`
	DateOfBirth   string `json:"dateOfBirth" binding:"required" validate:"required"`
	Gender        string `json:"gender" binding:"required" validate:"required,oneof=M F OTHER"`
	ParentName    string `json:"parentName,omitempty"`
	ParentEmail   string `json:"parentEmail,omitempty" validate:"omitempty,email"`
	ContactNumber string `json:"contactNumber,omitempty"`
	Address       string `json:"address,omitempty"`
	IsActive      *bool  `json:"isActive,omitempty"`
}

// StudentResponse represents the response for a student
type StudentResponse struct {
	StudentID             string `json:"studentId"`
	Name                  string `json:"name"`
	Grade                 string `json:"grade"`
	DateOfBirth           string `json:"dateOfBirth"`
	Gender                string `json:"gender"`
	ParentName            string `json:"parentName,omitempty"`
	ParentEmail           string `json:"parentEmail,omitempty"`
	ContactNumber         string `json:"contactNumber,omitempty"`
	Address               string `json:"address,omitempty"`
	IsActive              bool   `json:"isActive"`
	HasVaccinationRecords bool   `json:"hasVaccinationRecords"`
	CreatedAt             string `json:"createdAt"`
	UpdatedAt             string `json:"updatedAt"`
}

// FromStudent converts a student entity into its response form.
func FromStudent(student *models.Student, hasRecords bool) StudentResponse {
	if student == nil {
		return StudentResponse{}
	}
	return StudentResponse{
		StudentID:             student.StudentID,
		Name:                  student.Name,
		Grade:                 student.Grade,
		DateOfBirth:           student.DateOfBirth.Format("2006-01-02"),
		Gender:                student.Gender,
		ParentName:            student.ParentName,
		ParentEmail:           student.ParentEmail,
		ContactNumber:         student.ContactNumber,
		Address:               student.Address,
		IsActive:              student.IsActive,
		HasVaccinationRecords: hasRecords,
		CreatedAt:             student.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             student.UpdatedAt.Format(time.RFC3339),
	}
}

// StudentListResponse represents a paginated student list
type StudentListResponse struct {
	Students   []StudentResponse `json:"students"`
	Pagination PaginationInfo    `json:"pagination"`
}

// ImportResult summarizes a CSV student import.
type ImportResult struct {
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}
