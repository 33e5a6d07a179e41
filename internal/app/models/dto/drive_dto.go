package dto

import (
	"time"

	"github.com/schoolvax/vaccine-portal/internal/app/models"
)

// CreateVaccinationDriveRequest represents the request to schedule a drive.
// DriveDate uses the yyyy-MM-dd'T'HH:mm:ss wire format.
type CreateVaccinationDriveRequest struct {
	VaccineID        int64  `json:"vaccineId" binding:"required" validate:"required,min=1"`
	VaccineBatch     string `json:"vaccineBatch,omitempty"`
	DriveDate        string `json:"driveDate" binding:"required" validate:"required" example:"2026-10-15T09:00:00"`
	AvailableDoses   int    `json:"availableDoses" binding:"required" validate:"required,min=1"`
	ApplicableGrades string `json:"applicableGrades" binding:"required" validate:"required" example:"5,6,7"`
	MinimumAge       *int   `json:"minimumAge,omitempty" validate:"omitempty,min=0"`
	MaximumAge       *int   `json:"maximumAge,omitempty" validate:"omitempty,min=0"`
	Notes            string `json:"notes,omitempty"`
}

// UpdateVaccinationDriveRequest represents the request to update a drive
type UpdateVaccinationDriveRequest struct {
	VaccineID        int64               `json:"vaccineId" binding:"required" validate:"required,min=1"`
	VaccineBatch     string              `json:"vaccineBatch,omitempty"`
	DriveDate        string              `json:"driveDate" binding:"required" validate:"required"`
	AvailableDoses   int                 `json:"availableDoses" binding:"required" validate:"required,min=1"`
	ApplicableGrades string              `json:"applicableGrades" binding:"required" validate:"required"`
	MinimumAge       *int                `json:"minimumAge,omitempty" validate:"omitempty,min=0"`
	MaximumAge       *int                `json:"maximumAge,omitempty" validate:"omitempty,min=0"`
	Status           models.DriveStatus  `json:"status,omitempty"`
	IsActive         *bool               `json:"isActive,omitempty"`
	Notes            string              `json:"notes,omitempty"`
}

// VaccineRef is the compact vaccine view embedded in drive responses
type VaccineRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// VaccinationDriveResponse represents the response for a drive
type VaccinationDriveResponse struct {
	ID               int64      `json:"id"`
	Vaccine          VaccineRef `json:"vaccine"`
	VaccineBatch     string     `json:"vaccineBatch,omitempty"`
	DriveDate        string     `json:"driveDate"`
	AvailableDoses   int        `json:"availableDoses"`
	ApplicableGrades string     `json:"applicableGrades"`
	MinimumAge       *int       `json:"minimumAge,omitempty"`
	MaximumAge       *int       `json:"maximumAge,omitempty"`
	Status           string     `json:"status"`
	IsActive         bool       `json:"isActive"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        string     `json:"createdAt"`
	UpdatedAt        string     `json:"updatedAt"`
}

// FromVaccinationDrive converts a drive entity into its response form.
func FromVaccinationDrive(drive *models.VaccinationDrive) VaccinationDriveResponse {
	if drive == nil {
		return VaccinationDriveResponse{}
	}
	resp := VaccinationDriveResponse{
		ID:               drive.ID,
		Vaccine:          VaccineRef{ID: drive.VaccineID},
		VaccineBatch:     drive.VaccineBatch,
		DriveDate:        drive.DriveDate.Format("2006-01-02T15:04:05"),
		AvailableDoses:   drive.AvailableDoses,
		ApplicableGrades: drive.GradeSet().String(),
		MinimumAge:       drive.MinimumAge,
		MaximumAge:       drive.MaximumAge,
		Status:           string(drive.Status),
		IsActive:         drive.IsActive,
		Notes:            drive.Notes,
		CreatedAt:        drive.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        drive.UpdatedAt.Format(time.RFC3339),
	}
	if drive.Vaccine != nil {
		resp.Vaccine.Name = drive.Vaccine.Name
	}
	return resp
}
