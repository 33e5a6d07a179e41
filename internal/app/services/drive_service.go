package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/schoolvax/vaccine-portal/internal/app/models"
	"github.com/schoolvax/vaccine-portal/internal/app/models/dto"
	"github.com/schoolvax/vaccine-portal/internal/app/repositories"
	"github.com/schoolvax/vaccine-portal/internal/db"
	"github.com/schoolvax/vaccine-portal/internal/pkg/apperrors"
	"github.com/schoolvax/vaccine-portal/internal/pkg/helpers"
	"github.com/schoolvax/vaccine-portal/internal/pkg/logger"
)

// DriveService handles vaccination drive scheduling
type DriveService struct {
	database    *db.PostgresDB
	driveRepo   *repositories.DriveRepository
	vaccineRepo *repositories.VaccineRepository
}

// NewDriveService creates a new DriveService
func NewDriveService(database *db.PostgresDB, driveRepo *repositories.DriveRepository, vaccineRepo *repositories.VaccineRepository) *DriveService {
	return &DriveService{
		database:    database,
		driveRepo:   driveRepo,
		vaccineRepo: vaccineRepo,
	}
}

// Create schedules a new drive after checking the lead time and
// conflict rules.
func (s *DriveService) Create(ctx context.Context, req *dto.CreateVaccinationDriveRequest) (*models.VaccinationDrive, error) {
	if _, err := s.vaccineRepo.GetByID(ctx, req.VaccineID); err != nil {
		return nil, err
	}

	driveDate, err := helpers.ParseDateTime(req.DriveDate)
	if err != nil {
		return nil, err
	}

	drive := &models.VaccinationDrive{
		VaccineID:        req.VaccineID,
		VaccineBatch:     req.VaccineBatch,
		DriveDate:        driveDate,
		AvailableDoses:   req.AvailableDoses,
		ApplicableGrades: req.ApplicableGrades,
		MinimumAge:       req.MinimumAge,
		MaximumAge:       req.MaximumAge,
		Notes:            req.Notes,
	}
	gradeSet := drive.GradeSet()
	if gradeSet.IsEmpty() {
		return nil, fmt.Errorf("%w: applicableGrades cannot be empty", apperrors.ErrValidationFailed)
	}
	// persist the normalized form so grade filters match whole labels
	drive.SetGradeSet(gradeSet)

	// The conflict scan and the insert share one transaction so a
	// concurrent request cannot slip a conflicting drive in between.
	var id int64
	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		txRepo := s.driveRepo.WithTx(tx)
		if err := validateSchedule(ctx, txRepo, drive, time.Now()); err != nil {
			return err
		}
		createdID, err := txRepo.Create(ctx, drive)
		if err != nil {
			return err
		}
		id = createdID
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("driveID", id).Int64("vaccineID", drive.VaccineID).
		Str("grades", drive.ApplicableGrades).Time("driveDate", drive.DriveDate).Msg("Drive scheduled")
	return s.driveRepo.GetByID(ctx, id)
}

// validateSchedule runs the pure scheduling rules against the drives
// adjacent to the candidate's date.
func validateSchedule(ctx context.Context, driveRepo *repositories.DriveRepository, candidate *models.VaccinationDrive, now time.Time) error {
	from := helpers.Midnight(candidate.DriveDate).AddDate(0, 0, -ConflictWindowDays)
	to := helpers.Midnight(candidate.DriveDate).AddDate(0, 0, ConflictWindowDays+1)
	neighbours, err := driveRepo.FindActiveBetween(ctx, from, to, candidate.ID)
	if err != nil {
		return err
	}
	return ValidateDriveSchedule(candidate, neighbours, now)
}

// GetByID retrieves a drive
func (s *DriveService) GetByID(ctx context.Context, id int64) (*models.VaccinationDrive, error) {
	return s.driveRepo.GetByID(ctx, id)
}

// GetAll lists drives matching the filter, paginated
func (s *DriveService) GetAll(ctx context.Context, filter repositories.DriveFilter, page, pageSize int) ([]*models.VaccinationDrive, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	return s.driveRepo.GetAll(ctx, filter, offset, limit)
}

// Update reschedules or edits a drive. Drives whose date has passed
// are immutable.
func (s *DriveService) Update(ctx context.Context, id int64, req *dto.UpdateVaccinationDriveRequest) (*models.VaccinationDrive, error) {
	drive, err := s.driveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if helpers.Midnight(drive.DriveDate).Before(helpers.Midnight(now)) {
		return nil, fmt.Errorf("%w: drive %d took place on %s",
			apperrors.ErrPastDriveImmutable, drive.ID, helpers.Midnight(drive.DriveDate).Format(helpers.DateLayout))
	}

	if _, err := s.vaccineRepo.GetByID(ctx, req.VaccineID); err != nil {
		return nil, err
	}
	driveDate, err := helpers.ParseDateTime(req.DriveDate)
	if err != nil {
		return nil, err
	}

	updated := &models.VaccinationDrive{
		ID:               drive.ID,
		VaccineID:        req.VaccineID,
		VaccineBatch:     req.VaccineBatch,
		DriveDate:        driveDate,
		AvailableDoses:   req.AvailableDoses,
		ApplicableGrades: req.ApplicableGrades,
		MinimumAge:       req.MinimumAge,
		MaximumAge:       req.MaximumAge,
		Status:           drive.Status,
		IsActive:         drive.IsActive,
		Notes:            req.Notes,
	}
	gradeSet := updated.GradeSet()
	if gradeSet.IsEmpty() {
		return nil, fmt.Errorf("%w: applicableGrades cannot be empty", apperrors.ErrValidationFailed)
	}
	updated.SetGradeSet(gradeSet)
	if req.Status != "" {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, req.Status)
		}
		updated.Status = req.Status
	}
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		txRepo := s.driveRepo.WithTx(tx)
		if err := validateSchedule(ctx, txRepo, updated, now); err != nil {
			return err
		}
		return txRepo.Update(ctx, updated)
	})
	if err != nil {
		return nil, err
	}
	return s.driveRepo.GetByID(ctx, id)
}

// Deactivate soft deletes a drive
func (s *DriveService) Deactivate(ctx context.Context, id int64) error {
	return s.driveRepo.SoftDelete(ctx, id)
}
