package dto

import (
	"time"

	"github.com/schoolvax/vaccine-portal/internal/app/models"
)

// CreateVaccineRequest represents the request to create a vaccine
type CreateVaccineRequest struct {
	Name             string  `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Manufacturer     string  `json:"manufacturer,omitempty"`
	Description      string  `json:"description,omitempty"`
	DosesRequired    int     `json:"dosesRequired" binding:"required" validate:"required,min=1"`
	DaysBetweenDoses int     `json:"daysBetweenDoses,omitempty" validate:"omitempty,min=0"`
	ExpiryDate       string  `json:"expiryDate,omitempty"` // yyyy-MM-dd
	AvailableDoses   int     `json:"availableDoses,omitempty" validate:"omitempty,min=0"`
	Price            float64 `json:"price,omitempty" validate:"omitempty,min=0"`
}

// UpdateVaccineRequest represents the request to update a vaccine
type UpdateVaccineRequest struct {
	Name             string  `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Manufacturer     string  `json:"manufacturer,omitempty"`
	Description      string  `json:"description,omitempty"`
	DosesRequired    int     `json:"dosesRequired" binding:"required" validate:"required,min=1"`
	DaysBetweenDoses int     `json:"daysBetweenDoses,omitempty" validate:"omitempty,min=0"`
	ExpiryDate       string  `json:"expiryDate,omitempty"`
	AvailableDoses   int     `json:"availableDoses,omitempty" validate:"omitempty,min=0"`
	Price            float64 `json:"price,omitempty" validate:"omitempty,min=0"`
}

// VaccineResponse represents the response for a vaccine
type VaccineResponse struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Manufacturer     string  `json:"manufacturer,omitempty"`
	Description      string  `json:"description,omitempty"`
	DosesRequired    int     `json:"dosesRequired"`
	DaysBetweenDoses int     `json:"daysBetweenDoses"`
	ExpiryDate       string  `json:"expiryDate,omitempty"`
	AvailableDoses   int     `json:"availableDoses"`
	Price            float64 `json:"price"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// FromVaccine converts a vaccine entity into its response form.
func FromVaccine(vaccine *models.Vaccine) VaccineResponse {
	if vaccine == nil {
		return VaccineResponse{}
	}
	resp := VaccineResponse{
		ID:               vaccine.ID,
		Name:             vaccine.Name,
		Manufacturer:     vaccine.Manufacturer,
		Description:      vaccine.Description,
		DosesRequired:    vaccine.DosesRequired,
		DaysBetweenDoses: vaccine.DaysBetweenDoses,
		AvailableDoses:   vaccine.AvailableDoses,
		Price:            vaccine.Price,
		CreatedAt:        vaccine.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        vaccine.UpdatedAt.Format(time.RFC3339),
	}
	if !vaccine.ExpiryDate.IsZero() {
		resp.ExpiryDate = vaccine.ExpiryDate.Format("2006-01-02")
	}
	return resp
}
