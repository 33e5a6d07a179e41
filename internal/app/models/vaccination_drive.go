package models

import (
	"time"

	"github.com/schoolvax/vaccine-portal/internal/pkg/grades"
)

// VaccinationDrive defines a scheduled on-site vaccination event for one
// vaccine on one date, applicable to a set of grades. ApplicableGrades is
// the persisted comma separated form; GradeSet() is what scheduling logic
// should use.
type VaccinationDrive struct {
	ID               int64       `json:"id" db:"id" example:"1"`
	VaccineID        int64       `json:"vaccineId" db:"vaccine_id" example:"1"`
	VaccineBatch     string      `json:"vaccineBatch,omitempty" db:"vaccine_batch"`
	DriveDate        time.Time   `json:"driveDate" db:"drive_date"`
	AvailableDoses   int         `json:"availableDoses" db:"available_doses" example:"100"`
	ApplicableGrades string      `json:"applicableGrades" db:"applicable_grades" example:"5,6,7"`
	MinimumAge       *int        `json:"minimumAge,omitempty" db:"minimum_age"`
	MaximumAge       *int        `json:"maximumAge,omitempty" db:"maximum_age"`
	Status           DriveStatus `json:"status" db:"status" example:"SCHEDULED"`
	IsActive         bool        `json:"isActive" db:"is_active" example:"true"`
	Notes            string      `json:"notes,omitempty" db:"notes"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time   `json:"updatedAt" db:"updated_at"`

	// Relation (populated when needed)
	Vaccine *Vaccine `json:"vaccine,omitempty"`
}

// GradeSet parses the persisted grade list into a normalized set.
func (d *VaccinationDrive) GradeSet() grades.Set {
	return grades.ParseSet(d.ApplicableGrades)
}

// SetGradeSet stores a grade set back into the persisted representation.
func (d *VaccinationDrive) SetGradeSet(set grades.Set) {
	d.ApplicableGrades = set.String()
}
