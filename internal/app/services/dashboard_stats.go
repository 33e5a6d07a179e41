package services

import (
	"math"
	"sort"
	"time"

	"github.com/schoolvax/vaccine-portal/internal/app/models"
	"github.com/schoolvax/vaccine-portal/internal/app/models/dto"
	"github.com/schoolvax/vaccine-portal/internal/pkg/grades"
	"github.com/schoolvax/vaccine-portal/internal/pkg/helpers"
)

// DueSoonWindowDays is the horizon, in days, for upcoming next doses
// and upcoming drives on the dashboard.
const DueSoonWindowDays = 30

// ComputeDashboardStats aggregates portal-wide vaccination statistics.
// Students are expected to be the active population; records and
// drives the full sets. A student counts as vaccinated once they have
// at least one COMPLETED record. Overdue records are always a subset
// of non-completed ones, so the pending count never goes negative.
func ComputeDashboardStats(students []*models.Student, records []*models.VaccinationRecord, drives []*models.VaccinationDrive, now time.Time) dto.DashboardStatsResponse {
	vaccinated := map[string]bool{}
	for _, record := range records {
		if record.Status == models.RecordCompleted {
			vaccinated[record.StudentID] = true
		}
	}

	byGrade := map[string]*dto.GradeStats{}
	totalVaccinated := 0
	for _, student := range students {
		stats, ok := byGrade[student.Grade]
		if !ok {
			stats = &dto.GradeStats{Grade: student.Grade}
			byGrade[student.Grade] = stats
		}
		stats.TotalStudents++
		if vaccinated[student.StudentID] {
			stats.VaccinatedStudents++
			totalVaccinated++
		}
	}

	gradeStats := make([]dto.GradeStats, 0, len(byGrade))
	for _, stats := range byGrade {
		stats.VaccinationRate = rate(stats.VaccinatedStudents, stats.TotalStudents)
		gradeStats = append(gradeStats, *stats)
	}
	sort.Slice(gradeStats, func(i, j int) bool {
		return grades.Less(gradeStats[i].Grade, gradeStats[j].Grade)
	})

	summary := dto.StatusSummary{TotalRecords: len(records)}
	dueSoonEnd := now.AddDate(0, 0, DueSoonWindowDays)
	for _, record := range records {
		if record.Status == models.RecordCompleted {
			summary.CompletedRecords++
		}
		if record.NextDoseDate == nil {
			continue
		}
		next := *record.NextDoseDate
		if next.Before(now) {
			if record.Status != models.RecordCompleted {
				summary.OverdueRecords++
			}
		} else if !next.After(dueSoonEnd) {
			summary.DueSoonRecords++
		}
	}
	summary.PendingRecords = summary.TotalRecords - summary.CompletedRecords - summary.OverdueRecords

	upcoming := dto.UpcomingDrivesSummary{Drives: []dto.VaccinationDriveResponse{}}
	windowStart := helpers.Midnight(now)
	windowEnd := windowStart.AddDate(0, 0, DueSoonWindowDays)
	for _, drive := range drives {
		if !drive.IsActive {
			continue
		}
		day := helpers.Midnight(drive.DriveDate)
		if day.Before(windowStart) || day.After(windowEnd) {
			continue
		}
		upcoming.TotalDrives++
		upcoming.TotalDoses += drive.AvailableDoses
		upcoming.Drives = append(upcoming.Drives, dto.FromVaccinationDrive(drive))
	}

	return dto.DashboardStatsResponse{
		TotalStudents:          len(students),
		VaccinatedStudents:     totalVaccinated,
		OverallVaccinationRate: rate(totalVaccinated, len(students)),
		GradeStats:             gradeStats,
		StatusSummary:          summary,
		UpcomingDrives:         upcoming,
	}
}

// rate returns the percentage of part in total, rounded to two
// decimals. A zero total yields 0 rather than NaN.
func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*10000) / 100
}
