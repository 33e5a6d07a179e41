package services

import (
	"context"
	"time"

	"github.com/schoolvax/vaccine-portal/internal/app/models/dto"
	"github.com/schoolvax/vaccine-portal/internal/app/repositories"
	"github.com/schoolvax/vaccine-portal/internal/pkg/helpers"
)

// DashboardService aggregates portal-wide statistics
type DashboardService struct {
	studentRepo *repositories.StudentRepository
	recordRepo  *repositories.RecordRepository
	driveRepo   *repositories.DriveRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	studentRepo *repositories.StudentRepository,
	recordRepo *repositories.RecordRepository,
	driveRepo *repositories.DriveRepository,
) *DashboardService {
	return &DashboardService{
		studentRepo: studentRepo,
		recordRepo:  recordRepo,
		driveRepo:   driveRepo,
	}
}

// GetStats loads the active population and full record set and
// computes the dashboard aggregates.
func (s *DashboardService) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	now := time.Now()

	students, err := s.studentRepo.GetAllActive(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.recordRepo.GetAllForDashboard(ctx)
	if err != nil {
		return nil, err
	}

	windowStart := helpers.Midnight(now)
	drives, err := s.driveRepo.FindActiveBetween(ctx, windowStart, windowStart.AddDate(0, 0, DueSoonWindowDays+1), 0)
	if err != nil {
		return nil, err
	}

	stats := ComputeDashboardStats(students, records, drives, now)
	return &stats, nil
}
