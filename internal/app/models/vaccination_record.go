package models

import (
	"time"
)

// VaccinationRecord documents the administration (or scheduled/cancelled
// attempt) of one dose of one vaccine to one student under one drive.
// Dose numbers for a given (student, drive) pair are strictly increasing
// and a (student, drive, dose) triple is unique.
type VaccinationRecord struct {
	ID              int64        `json:"id" db:"id" example:"1"`
	StudentID       string       `json:"studentId" db:"student_id" example:"ROLL-2025-0001"`
	DriveID         int64        `json:"driveId" db:"drive_id" example:"1"`
	DoseNumber      int          `json:"doseNumber" db:"dose_number" example:"1"`
	VaccinationDate time.Time    `json:"vaccinationDate" db:"vaccination_date"`
	NextDoseDate    *time.Time   `json:"nextDoseDate,omitempty" db:"next_dose_date"`
	BatchNumber     string       `json:"batchNumber,omitempty" db:"batch_number"`
	AdministeredBy  string       `json:"administeredBy,omitempty" db:"administered_by"`
	VaccinationSite string       `json:"vaccinationSite,omitempty" db:"vaccination_site"`
	Status          RecordStatus `json:"status" db:"status" example:"SCHEDULED"`
	SideEffects     string       `json:"sideEffects,omitempty" db:"side_effects"`
	Notes           string       `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time    `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student *Student          `json:"student,omitempty"`
	Drive   *VaccinationDrive `json:"drive,omitempty"`
}
