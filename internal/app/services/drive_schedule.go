package services

import (
	"fmt"
	"time"

	"github.com/schoolvax/vaccine-portal/internal/app/models"
	"github.com/schoolvax/vaccine-portal/internal/pkg/apperrors"
	"github.com/schoolvax/vaccine-portal/internal/pkg/helpers"
)

// MinLeadDays is the minimum number of days between scheduling a drive
// and the drive taking place.
const MinLeadDays = 15

// ConflictWindowDays is how close, in days, two drives for overlapping
// grades may be before they conflict. A distance of exactly
// ConflictWindowDays already conflicts.
const ConflictWindowDays = 1

// ValidateDriveSchedule checks a candidate drive against the lead time
// rule and against conflicting drives. Dates are compared at day
// granularity. The candidate itself is skipped in the conflict scan
// when it carries an ID, so updates do not conflict with themselves.
func ValidateDriveSchedule(candidate *models.VaccinationDrive, existing []*models.VaccinationDrive, today time.Time) error {
	driveDay := helpers.Midnight(candidate.DriveDate)
	earliest := helpers.Midnight(today).AddDate(0, 0, MinLeadDays)
	if driveDay.Before(earliest) {
		return fmt.Errorf("%w: drive on %s must be at least %d days after %s",
			apperrors.ErrDriveLeadTime,
			driveDay.Format(helpers.DateLayout), MinLeadDays, helpers.Midnight(today).Format(helpers.DateLayout))
	}

	candidateGrades := candidate.GradeSet()
	for _, other := range existing {
		if candidate.ID != 0 && other.ID == candidate.ID {
			continue
		}
		if !other.IsActive {
			continue
		}
		if daysApart(driveDay, helpers.Midnight(other.DriveDate)) > ConflictWindowDays {
			continue
		}
		if candidateGrades.Intersects(other.GradeSet()) {
			return fmt.Errorf("%w: drive %d on %s covers overlapping grades",
				apperrors.ErrDriveConflict, other.ID, helpers.Midnight(other.DriveDate).Format(helpers.DateLayout))
		}
	}

	return nil
}

func daysApart(a, b time.Time) int {
	diff := int(a.Sub(b).Hours() / 24)
	if diff < 0 {
		diff = -diff
	}
	return diff
}
