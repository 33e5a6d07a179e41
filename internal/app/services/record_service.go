package services

import (
	"context"
	"time"

	"github.com/schoolvax/vaccine-portal/internal/app/models"
	"github.com/schoolvax/vaccine-portal/internal/app/models/dto"
	"github.com/schoolvax/vaccine-portal/internal/app/repositories"
	"github.com/schoolvax/vaccine-portal/internal/pkg/helpers"
	"github.com/schoolvax/vaccine-portal/internal/pkg/logger"
)

// RecordService handles vaccination record lifecycle
type RecordService struct {
	recordRepo  *repositories.RecordRepository
	studentRepo *repositories.StudentRepository
	driveRepo   *repositories.DriveRepository
}

// NewRecordService creates a new RecordService
func NewRecordService(
	recordRepo *repositories.RecordRepository,
	studentRepo *repositories.StudentRepository,
	driveRepo *repositories.DriveRepository,
) *RecordService {
	return &RecordService{
		recordRepo:  recordRepo,
		studentRepo: studentRepo,
		driveRepo:   driveRepo,
	}
}

// Create records a dose for a student under a drive after running the
// dose ordering rules.
func (s *RecordService) Create(ctx context.Context, req *dto.CreateVaccinationRecordRequest) (*models.VaccinationRecord, error) {
	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}
	if _, err := s.driveRepo.GetByID(ctx, req.DriveID); err != nil {
		return nil, err
	}

	vaccinationDate, err := helpers.ParseDateTime(req.VaccinationDate)
	if err != nil {
		return nil, err
	}
	var nextDoseDate *time.Time
	if req.NextDoseDate != "" {
		parsed, err := helpers.ParseDateTime(req.NextDoseDate)
		if err != nil {
			return nil, err
		}
		nextDoseDate = &parsed
	}

	record := &models.VaccinationRecord{
		StudentID:       req.StudentID,
		DriveID:         req.DriveID,
		DoseNumber:      req.DoseNumber,
		VaccinationDate: vaccinationDate,
		NextDoseDate:    nextDoseDate,
		BatchNumber:     req.BatchNumber,
		AdministeredBy:  req.AdministeredBy,
		VaccinationSite: req.VaccinationSite,
		Status:          models.RecordStatus(req.Status),
		SideEffects:     req.SideEffects,
		Notes:           req.Notes,
	}

	existingDoses, err := s.recordRepo.DoseNumbers(ctx, req.StudentID, req.DriveID, 0)
	if err != nil {
		return nil, err
	}
	if err := ValidateNewRecord(record, existingDoses, time.Now()); err != nil {
		return nil, err
	}

	id, err := s.recordRepo.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("recordID", id).Str("studentID", record.StudentID).
		Int64("driveID", record.DriveID).Int("dose", record.DoseNumber).Msg("Vaccination recorded")
	return s.recordRepo.GetByID(ctx, id)
}

// GetByID retrieves a record
func (s *RecordService) GetByID(ctx context.Context, id int64) (*models.VaccinationRecord, error) {
	return s.recordRepo.GetByID(ctx, id)
}

// GetAll lists records matching the filter, paginated
func (s *RecordService) GetAll(ctx context.Context, filter repositories.RecordFilter, page, pageSize int) ([]*models.VaccinationRecord, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	return s.recordRepo.GetAll(ctx, filter, offset, limit)
}

// Update applies a partial update to a record. Every supplied field is
// validated before any of them is stored.
func (s *RecordService) Update(ctx context.Context, id int64, patch *dto.UpdateVaccinationRecordRequest) (*models.VaccinationRecord, error) {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	maxDose, err := s.recordRepo.MaxDoseNumber(ctx, record.StudentID, record.DriveID, record.ID)
	if err != nil {
		return nil, err
	}

	if err := ApplyRecordUpdate(record, patch, maxDose, time.Now()); err != nil {
		return nil, err
	}

	if err := s.recordRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return s.recordRepo.GetByID(ctx, id)
}

// Delete removes a record permanently
func (s *RecordService) Delete(ctx context.Context, id int64) error {
	return s.recordRepo.Delete(ctx, id)
}
