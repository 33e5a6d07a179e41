package models

import (
	"time"
)

// Student defines the student model based on the 'students' table.
// StudentID is the school-assigned roll number ("ROLL-2025-0001"),
// generated once at creation and immutable afterwards.
type Student struct {
	StudentID     string    `json:"studentId" db:"student_id" example:"ROLL-2025-0001"`
	Name          string    `json:"name" db:"name" example:"Aditi Sharma"`
	Grade         string    `json:"grade" db:"grade" example:"5"`
	DateOfBirth   time.Time `json:"dateOfBirth" db:"date_of_birth"`
	Gender        string    `json:"gender" db:"gender" example:"F"`
	ParentName    string    `json:"parentName,omitempty" db:"parent_name"`
	ParentEmail   string    `json:"parentEmail,omitempty" db:"parent_email"`
	ContactNumber string    `json:"contactNumber,omitempty" db:"contact_number"`
	Address       string    `json:"address,omitempty" db:"address"`
	IsActive      bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}
