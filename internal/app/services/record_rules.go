package services

import (
	"fmt"
	"time"

	"github.com/schoolvax/vaccine-portal/internal/app/models"
	"github.com/schoolvax/vaccine-portal/internal/app/models/dto"
	"github.com/schoolvax/vaccine-portal/internal/pkg/apperrors"
	"github.com/schoolvax/vaccine-portal/internal/pkg/helpers"
)

// ValidateNewRecord checks a candidate vaccination record against the
// doses already recorded for the same (student, drive) pair. Checks run
// in a fixed order: vaccination date first, then duplicate dose, then
// dose sequence. An empty status defaults to SCHEDULED.
func ValidateNewRecord(candidate *models.VaccinationRecord, existingDoses []int, now time.Time) error {
	if candidate.VaccinationDate.After(now) {
		return fmt.Errorf("%w: %s is after %s",
			apperrors.ErrFutureVaccinationDate,
			candidate.VaccinationDate.Format(helpers.DateTimeLayout), now.Format(helpers.DateTimeLayout))
	}

	maxDose := 0
	for _, dose := range existingDoses {
		if dose == candidate.DoseNumber {
			return fmt.Errorf("%w: dose %d", apperrors.ErrDuplicateDose, candidate.DoseNumber)
		}
		if dose > maxDose {
			maxDose = dose
		}
	}
	if candidate.DoseNumber <= maxDose {
		return fmt.Errorf("%w: dose %d must be greater than the last recorded dose %d",
			apperrors.ErrDoseSequence, candidate.DoseNumber, maxDose)
	}

	if candidate.Status == "" {
		candidate.Status = models.RecordScheduled
	}
	if !candidate.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, candidate.Status)
	}

	return nil
}

// ApplyRecordUpdate validates every field supplied in the patch and
// only then applies them to the record. When any field fails
// validation the record is left untouched.
func ApplyRecordUpdate(record *models.VaccinationRecord, patch *dto.UpdateVaccinationRecordRequest, maxDoseExcludingSelf int, now time.Time) error {
	var (
		vaccinationDate *time.Time
		nextDoseDate    *time.Time
		clearNextDose   bool
		status          *models.RecordStatus
	)

	if patch.DoseNumber != nil && *patch.DoseNumber != record.DoseNumber {
		if *patch.DoseNumber <= maxDoseExcludingSelf {
			return fmt.Errorf("%w: dose %d must be greater than the last recorded dose %d",
				apperrors.ErrDoseSequence, *patch.DoseNumber, maxDoseExcludingSelf)
		}
	}

	if patch.VaccinationDate != nil {
		parsed, err := helpers.ParseDateTime(*patch.VaccinationDate)
		if err != nil {
			return err
		}
		if parsed.After(now) {
			return fmt.Errorf("%w: %s is after %s",
				apperrors.ErrFutureVaccinationDate,
				parsed.Format(helpers.DateTimeLayout), now.Format(helpers.DateTimeLayout))
		}
		vaccinationDate = &parsed
	}

	if patch.NextDoseDate != nil {
		if *patch.NextDoseDate == "" {
			clearNextDose = true
		} else {
			parsed, err := helpers.ParseDateTime(*patch.NextDoseDate)
			if err != nil {
				return err
			}
			nextDoseDate = &parsed
		}
	}

	if patch.Status != nil {
		next := models.RecordStatus(*patch.Status)
		if !next.Valid() {
			return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, next)
		}
		if next != record.Status && !record.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s to %s", apperrors.ErrInvalidStatusTransition, record.Status, next)
		}
		status = &next
	}

	// All supplied fields validated, apply them together.
	if patch.DoseNumber != nil {
		record.DoseNumber = *patch.DoseNumber
	}
	if vaccinationDate != nil {
		record.VaccinationDate = *vaccinationDate
	}
	if clearNextDose {
		record.NextDoseDate = nil
	} else if nextDoseDate != nil {
		record.NextDoseDate = nextDoseDate
	}
	if patch.BatchNumber != nil {
		record.BatchNumber = *patch.BatchNumber
	}
	if patch.AdministeredBy != nil {
		record.AdministeredBy = *patch.AdministeredBy
	}
	if patch.VaccinationSite != nil {
		record.VaccinationSite = *patch.VaccinationSite
	}
	if status != nil {
		record.Status = *status
	}
	if patch.SideEffects != nil {
		record.SideEffects = *patch.SideEffects
	}
	if patch.Notes != nil {
		record.Notes = *patch.Notes
	}

	return nil
}
