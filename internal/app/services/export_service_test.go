package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/schoolvax/vaccine-portal/internal/app/models"
)

func TestReportRow_FullyJoined(t *testing.T) {
	next := time.Date(2026, 4, 13, 9, 0, 0, 0, time.UTC)
	record := &models.VaccinationRecord{
		StudentID:       "ROLL-2025-0001",
		DoseNumber:      2,
		VaccinationDate: time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC),
		NextDoseDate:    &next,
		Status:          models.RecordCompleted,
		AdministeredBy:  "Nurse Joy",
		Student:         &models.Student{Name: "Aditi Sharma", Grade: "5"},
		Drive: &models.VaccinationDrive{
			Vaccine: &models.Vaccine{Name: "MMR"},
		},
	}

	row := reportRow(record)
	assert.Equal(t, []string{
		"ROLL-2025-0001", "Aditi Sharma", "5", "MMR", "2",
		"2026-03-16T09:00:00", "2026-04-13T09:00:00", "COMPLETED", "Nurse Joy",
	}, row)
	assert.Len(t, row, len(reportHeader))
}

func TestReportRow_MissingRelations(t *testing.T) {
	record := &models.VaccinationRecord{
		StudentID:       "ROLL-2025-0002",
		DoseNumber:      1,
		VaccinationDate: time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC),
		Status:          models.RecordScheduled,
	}

	row := reportRow(record)
	assert.Equal(t, "ROLL-2025-0002", row[0])
	assert.Equal(t, "", row[1])
	assert.Equal(t, "", row[3])
	assert.Equal(t, "", row[6])
	assert.Equal(t, "SCHEDULED", row[7])
}

func TestValidateCSVHeader(t *testing.T) {
	valid := []string{"name", "grade", "dateOfBirth", "gender", "parentName", "parentEmail", "contactNumber", "address"}
	assert.NoError(t, validateCSVHeader(valid))

	// case and surrounding whitespace are tolerated
	relaxed := []string{"Name", " grade ", "DATEOFBIRTH", "gender", "parentName", "parentEmail", "contactNumber", "address"}
	assert.NoError(t, validateCSVHeader(relaxed))

	assert.Error(t, validateCSVHeader(valid[:6]))

	swapped := append([]string{}, valid...)
	swapped[0], swapped[1] = swapped[1], swapped[0]
	assert.Error(t, validateCSVHeader(swapped))
}
