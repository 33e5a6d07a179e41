package dto

import (
	"time"

	"github.com/schoolvax/vaccine-portal/internal/app/models"
)

// CreateVaccinationRecordRequest represents the request to record a dose.
// VaccinationDate and NextDoseDate use the yyyy-MM-dd'T'HH:mm:ss format.
type CreateVaccinationRecordRequest struct {
	StudentID       string `json:"studentId" binding:"required" validate:"required"`
	DriveID         int64  `json:"driveId" binding:"required" validate:"required,min=1"`
	DoseNumber      int    `json:"doseNumber" binding:"required" validate:"required,min=1"`
	VaccinationDate string `json:"vaccinationDate" binding:"required" validate:"required" example:"2026-09-01T10:30:00"`
	NextDoseDate    string `json:"nextDoseDate,omitempty"`
	BatchNumber     string `json:"batchNumber,omitempty"`
	AdministeredBy  string `json:"administeredBy,omitempty"`
	VaccinationSite string `json:"vaccinationSite,omitempty"`
	Status          string `json:"status,omitempty" validate:"omitempty,oneof=SCHEDULED COMPLETED CANCELLED"`
	SideEffects     string `json:"sideEffects,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// UpdateVaccinationRecordRequest represents a partial record update.
// Only non-nil fields are applied, and every supplied field is validated
// before any of them take effect.
type UpdateVaccinationRecordRequest struct {
	DoseNumber      *int    `json:"doseNumber,omitempty" validate:"omitempty,min=1"`
	VaccinationDate *string `json:"vaccinationDate,omitempty"`
	NextDoseDate    *string `json:"nextDoseDate,omitempty"`
	BatchNumber     *string `json:"batchNumber,omitempty"`
	AdministeredBy  *string `json:"administeredBy,omitempty"`
	VaccinationSite *string `json:"vaccinationSite,omitempty"`
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=SCHEDULED COMPLETED CANCELLED"`
	SideEffects     *string `json:"sideEffects,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// VaccinationRecordResponse represents the response for a record
type VaccinationRecordResponse struct {
	ID              int64      `json:"id"`
	StudentID       string     `json:"studentId"`
	StudentName     string     `json:"studentName,omitempty"`
	DriveID         int64      `json:"driveId"`
	VaccineName     string     `json:"vaccineName,omitempty"`
	DoseNumber      int        `json:"doseNumber"`
	VaccinationDate string     `json:"vaccinationDate"`
	NextDoseDate    *string    `json:"nextDoseDate,omitempty"`
	BatchNumber     string     `json:"batchNumber,omitempty"`
	AdministeredBy  string     `json:"administeredBy,omitempty"`
	VaccinationSite string     `json:"vaccinationSite,omitempty"`
	Status          string     `json:"status"`
	SideEffects     string     `json:"sideEffects,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       string     `json:"createdAt"`
	UpdatedAt       string     `json:"updatedAt"`
}

// FromVaccinationRecord converts a record entity into its response form.
func FromVaccinationRecord(record *models.VaccinationRecord) VaccinationRecordResponse {
	if record == nil {
		return VaccinationRecordResponse{}
	}
	resp := VaccinationRecordResponse{
		ID:              record.ID,
		StudentID:       record.StudentID,
		DriveID:         record.DriveID,
		DoseNumber:      record.DoseNumber,
		VaccinationDate: record.VaccinationDate.Format("2006-01-02T15:04:05"),
		BatchNumber:     record.BatchNumber,
		AdministeredBy:  record.AdministeredBy,
		VaccinationSite: record.VaccinationSite,
		Status:          string(record.Status),
		SideEffects:     record.SideEffects,
		Notes:           record.Notes,
		CreatedAt:       record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       record.UpdatedAt.Format(time.RFC3339),
	}
	if record.NextDoseDate != nil {
		next := record.NextDoseDate.Format("2006-01-02T15:04:05")
		resp.NextDoseDate = &next
	}
	if record.Student != nil {
		resp.StudentName = record.Student.Name
	}
	if record.Drive != nil && record.Drive.Vaccine != nil {
		resp.VaccineName = record.Drive.Vaccine.Name
	}
	return resp
}
