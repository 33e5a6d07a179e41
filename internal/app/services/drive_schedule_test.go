package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolvax/vaccine-portal/internal/app/models"
	"github.com/schoolvax/vaccine-portal/internal/pkg/apperrors"
	"github.com/schoolvax/vaccine-portal/internal/pkg/helpers"
)

var scheduleToday = time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)

func driveOn(id int64, date time.Time, gradeList string) *models.VaccinationDrive {
	return &models.VaccinationDrive{
		ID:               id,
		VaccineID:        1,
		DriveDate:        date,
		ApplicableGrades: gradeList,
		Status:           models.DriveScheduled,
		IsActive:         true,
	}
}

func TestValidateDriveSchedule_LeadTime(t *testing.T) {
	// 14 days out is one day short
	candidate := driveOn(0, scheduleToday.AddDate(0, 0, 14), "5,6")
	err := ValidateDriveSchedule(candidate, nil, scheduleToday)
	assert.ErrorIs(t, err, apperrors.ErrDriveLeadTime)

	// exactly 15 days out is allowed
	candidate = driveOn(0, scheduleToday.AddDate(0, 0, 15), "5,6")
	assert.NoError(t, ValidateDriveSchedule(candidate, nil, scheduleToday))
}

func TestValidateDriveSchedule_LeadTimeIgnoresTimeOfDay(t *testing.T) {
	// a drive at 08:00 on day 15 is still day 15 even though fewer
	// than 15*24 hours remain
	driveDate := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)
	candidate := driveOn(0, driveDate, "5")
	assert.NoError(t, ValidateDriveSchedule(candidate, nil, scheduleToday))
}

func TestValidateDriveSchedule_LeadTimeServerWestOfUTC(t *testing.T) {
	// drive dates are parsed in UTC while the clock reading carries
	// the server's location; day 15 must still be day 15
	west := time.FixedZone("UTC-5", -5*3600)
	today := time.Date(2026, 3, 1, 14, 30, 0, 0, west)
	driveDate, err := helpers.ParseDateTime("2026-03-16T00:00:00")
	require.NoError(t, err)

	candidate := driveOn(0, driveDate, "5,6")
	assert.NoError(t, ValidateDriveSchedule(candidate, nil, today))

	// one day short still fails from the same clock
	driveDate, err = helpers.ParseDateTime("2026-03-15T00:00:00")
	require.NoError(t, err)
	candidate = driveOn(0, driveDate, "5,6")
	assert.ErrorIs(t, ValidateDriveSchedule(candidate, nil, today), apperrors.ErrDriveLeadTime)
}

func TestValidateDriveSchedule_ConflictSameDay(t *testing.T) {
	date := scheduleToday.AddDate(0, 0, 20)
	existing := []*models.VaccinationDrive{driveOn(7, date, "6,7")}

	candidate := driveOn(0, date, "5,6")
	err := ValidateDriveSchedule(candidate, existing, scheduleToday)
	assert.ErrorIs(t, err, apperrors.ErrDriveConflict)
}

func TestValidateDriveSchedule_ConflictAdjacentDay(t *testing.T) {
	date := scheduleToday.AddDate(0, 0, 20)
	existing := []*models.VaccinationDrive{driveOn(7, date.AddDate(0, 0, 1), "6")}

	candidate := driveOn(0, date, "5,6")
	err := ValidateDriveSchedule(candidate, existing, scheduleToday)
	assert.ErrorIs(t, err, apperrors.ErrDriveConflict)
}

func TestValidateDriveSchedule_NoConflictTwoDaysApart(t *testing.T) {
	date := scheduleToday.AddDate(0, 0, 20)
	existing := []*models.VaccinationDrive{driveOn(7, date.AddDate(0, 0, 2), "5,6")}

	candidate := driveOn(0, date, "5,6")
	assert.NoError(t, ValidateDriveSchedule(candidate, existing, scheduleToday))
}

func TestValidateDriveSchedule_NoConflictDisjointGrades(t *testing.T) {
	date := scheduleToday.AddDate(0, 0, 20)
	existing := []*models.VaccinationDrive{driveOn(7, date, "7,8")}

	candidate := driveOn(0, date, "5,6")
	assert.NoError(t, ValidateDriveSchedule(candidate, existing, scheduleToday))
}

func TestValidateDriveSchedule_SkipsSelfOnUpdate(t *testing.T) {
	date := scheduleToday.AddDate(0, 0, 20)
	existing := []*models.VaccinationDrive{driveOn(7, date, "5,6")}

	// updating drive 7 must not conflict with its own stored row
	candidate := driveOn(7, date, "5,6")
	assert.NoError(t, ValidateDriveSchedule(candidate, existing, scheduleToday))
}

func TestValidateDriveSchedule_SkipsInactiveDrives(t *testing.T) {
	date := scheduleToday.AddDate(0, 0, 20)
	cancelled := driveOn(7, date, "5,6")
	cancelled.IsActive = false

	candidate := driveOn(0, date, "5,6")
	assert.NoError(t, ValidateDriveSchedule(candidate, []*models.VaccinationDrive{cancelled}, scheduleToday))
}

func TestValidateDriveSchedule_LeadTimeCheckedBeforeConflicts(t *testing.T) {
	tooSoon := scheduleToday.AddDate(0, 0, 5)
	existing := []*models.VaccinationDrive{driveOn(7, tooSoon, "5,6")}

	candidate := driveOn(0, tooSoon, "5,6")
	err := ValidateDriveSchedule(candidate, existing, scheduleToday)
	assert.ErrorIs(t, err, apperrors.ErrDriveLeadTime)
}
