package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDriveGradeSetRoundTrip(t *testing.T) {
	drive := &VaccinationDrive{ApplicableGrades: " 7,5, 6 ,5"}

	set := drive.GradeSet()
	assert.Equal(t, []string{"5", "6", "7"}, set.Labels())

	// writing the set back normalizes the persisted form
	drive.SetGradeSet(set)
	assert.Equal(t, "5,6,7", drive.ApplicableGrades)
}
