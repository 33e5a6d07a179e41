package models

import (
	"time"
)

// Vaccine defines the vaccine model based on the 'vaccines' table
type Vaccine struct {
	ID               int64     `json:"id" db:"id" example:"1"`
	Name             string    `json:"name" db:"name" example:"MMR"` // globally unique
	Manufacturer     string    `json:"manufacturer" db:"manufacturer" example:"Serum Institute"`
	Description      string    `json:"description" db:"description"`
	DosesRequired    int       `json:"dosesRequired" db:"doses_required" example:"2"`
	DaysBetweenDoses int       `json:"daysBetweenDoses" db:"days_between_doses" example:"28"`
	ExpiryDate       time.Time `json:"expiryDate" db:"expiry_date"`
	AvailableDoses   int       `json:"availableDoses" db:"available_doses" example:"500"`
	Price            float64   `json:"price" db:"price" example:"12.50"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}
