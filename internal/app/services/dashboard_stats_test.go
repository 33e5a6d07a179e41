package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolvax/vaccine-portal/internal/app/models"
)

var statsNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func student(id, grade string) *models.Student {
	return &models.Student{StudentID: id, Grade: grade, IsActive: true}
}

func completedRecord(studentID string) *models.VaccinationRecord {
	return &models.VaccinationRecord{
		StudentID: studentID,
		Status:    models.RecordCompleted,
	}
}

func TestComputeDashboardStats_Empty(t *testing.T) {
	stats := ComputeDashboardStats(nil, nil, nil, statsNow)

	assert.Equal(t, 0, stats.TotalStudents)
	assert.Equal(t, float64(0), stats.OverallVaccinationRate)
	assert.Empty(t, stats.GradeStats)
	assert.Equal(t, 0, stats.StatusSummary.TotalRecords)
	assert.Equal(t, 0, stats.UpcomingDrives.TotalDrives)
	assert.NotNil(t, stats.UpcomingDrives.Drives)
}

func TestComputeDashboardStats_VaccinatedNeedsCompletedRecord(t *testing.T) {
	students := []*models.Student{student("ROLL-2025-0001", "5"), student("ROLL-2025-0002", "5")}
	records := []*models.VaccinationRecord{
		completedRecord("ROLL-2025-0001"),
		{StudentID: "ROLL-2025-0002", Status: models.RecordScheduled},
	}

	stats := ComputeDashboardStats(students, records, nil, statsNow)

	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 1, stats.VaccinatedStudents)
	assert.Equal(t, float64(50), stats.OverallVaccinationRate)
}

func TestComputeDashboardStats_StudentCountedOnce(t *testing.T) {
	students := []*models.Student{student("ROLL-2025-0001", "5")}
	records := []*models.VaccinationRecord{
		completedRecord("ROLL-2025-0001"),
		completedRecord("ROLL-2025-0001"),
	}

	stats := ComputeDashboardStats(students, records, nil, statsNow)
	assert.Equal(t, 1, stats.VaccinatedStudents)
}

func TestComputeDashboardStats_GradeBreakdownSorted(t *testing.T) {
	students := []*models.Student{
		student("ROLL-2025-0001", "10"),
		student("ROLL-2025-0002", "9"),
		student("ROLL-2025-0003", "9"),
	}
	records := []*models.VaccinationRecord{completedRecord("ROLL-2025-0002")}

	stats := ComputeDashboardStats(students, records, nil, statsNow)

	require.Len(t, stats.GradeStats, 2)
	assert.Equal(t, "9", stats.GradeStats[0].Grade)
	assert.Equal(t, "10", stats.GradeStats[1].Grade)
	assert.Equal(t, 2, stats.GradeStats[0].TotalStudents)
	assert.Equal(t, float64(50), stats.GradeStats[0].VaccinationRate)
	assert.Equal(t, float64(0), stats.GradeStats[1].VaccinationRate)
}

func TestComputeDashboardStats_RateRounding(t *testing.T) {
	students := []*models.Student{
		student("ROLL-2025-0001", "5"),
		student("ROLL-2025-0002", "5"),
		student("ROLL-2025-0003", "5"),
	}
	records := []*models.VaccinationRecord{completedRecord("ROLL-2025-0001")}

	stats := ComputeDashboardStats(students, records, nil, statsNow)
	assert.Equal(t, 33.33, stats.OverallVaccinationRate)
}

func TestComputeDashboardStats_StatusSummary(t *testing.T) {
	overdue := statsNow.AddDate(0, 0, -3)
	dueSoon := statsNow.AddDate(0, 0, 10)
	farOut := statsNow.AddDate(0, 0, 45)

	records := []*models.VaccinationRecord{
		// completed with a past next dose date stays completed, not overdue
		{StudentID: "a", Status: models.RecordCompleted, NextDoseDate: &overdue},
		{StudentID: "b", Status: models.RecordScheduled, NextDoseDate: &overdue},
		{StudentID: "c", Status: models.RecordScheduled, NextDoseDate: &dueSoon},
		{StudentID: "d", Status: models.RecordScheduled, NextDoseDate: &farOut},
		{StudentID: "e", Status: models.RecordScheduled},
	}

	stats := ComputeDashboardStats(nil, records, nil, statsNow)
	summary := stats.StatusSummary

	assert.Equal(t, 5, summary.TotalRecords)
	assert.Equal(t, 1, summary.CompletedRecords)
	assert.Equal(t, 1, summary.OverdueRecords)
	assert.Equal(t, 1, summary.DueSoonRecords)
	assert.Equal(t, 3, summary.PendingRecords)
}

func TestComputeDashboardStats_DueSoonIgnoresStatus(t *testing.T) {
	dueSoon := statsNow.AddDate(0, 0, 10)
	records := []*models.VaccinationRecord{
		{StudentID: "a", Status: models.RecordCompleted, NextDoseDate: &dueSoon},
	}

	stats := ComputeDashboardStats(nil, records, nil, statsNow)
	assert.Equal(t, 1, stats.StatusSummary.DueSoonRecords)
}

func TestComputeDashboardStats_UpcomingDrivesWindow(t *testing.T) {
	drives := []*models.VaccinationDrive{
		driveOn(1, statsNow, "5"),                    // today counts
		driveOn(2, statsNow.AddDate(0, 0, 30), "6"),  // edge of the window
		driveOn(3, statsNow.AddDate(0, 0, 31), "7"),  // past the window
		driveOn(4, statsNow.AddDate(0, 0, -1), "8"),  // already happened
		driveOn(5, statsNow.AddDate(0, 0, 10), "9"),  // inactive, see below
	}
	drives[0].AvailableDoses = 100
	drives[1].AvailableDoses = 50
	drives[4].IsActive = false

	stats := ComputeDashboardStats(nil, nil, drives, statsNow)
	upcoming := stats.UpcomingDrives

	assert.Equal(t, 2, upcoming.TotalDrives)
	assert.Equal(t, 150, upcoming.TotalDoses)
	require.Len(t, upcoming.Drives, 2)
	assert.Equal(t, int64(1), upcoming.Drives[0].ID)
	assert.Equal(t, int64(2), upcoming.Drives[1].ID)
}
