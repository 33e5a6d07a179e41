package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolvax/vaccine-portal/internal/app/models"
	"github.com/schoolvax/vaccine-portal/internal/app/models/dto"
	"github.com/schoolvax/vaccine-portal/internal/pkg/apperrors"
)

var recordNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newRecord(dose int, at time.Time) *models.VaccinationRecord {
	return &models.VaccinationRecord{
		StudentID:       "ROLL-2025-0001",
		DriveID:         1,
		DoseNumber:      dose,
		VaccinationDate: at,
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestValidateNewRecord_FutureDateRejected(t *testing.T) {
	record := newRecord(1, recordNow.Add(24*time.Hour))
	err := ValidateNewRecord(record, nil, recordNow)
	assert.ErrorIs(t, err, apperrors.ErrFutureVaccinationDate)
}

func TestValidateNewRecord_DuplicateDose(t *testing.T) {
	record := newRecord(2, recordNow.Add(-time.Hour))
	err := ValidateNewRecord(record, []int{1, 2}, recordNow)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateDose)
}

func TestValidateNewRecord_DoseMustExceedMax(t *testing.T) {
	record := newRecord(2, recordNow.Add(-time.Hour))
	err := ValidateNewRecord(record, []int{1, 3}, recordNow)
	assert.ErrorIs(t, err, apperrors.ErrDoseSequence)
}

func TestValidateNewRecord_FirstDose(t *testing.T) {
	record := newRecord(1, recordNow.Add(-time.Hour))
	require.NoError(t, ValidateNewRecord(record, nil, recordNow))
	assert.Equal(t, models.RecordScheduled, record.Status)
}

func TestValidateNewRecord_NextInSequence(t *testing.T) {
	record := newRecord(3, recordNow.Add(-time.Hour))
	assert.NoError(t, ValidateNewRecord(record, []int{1, 2}, recordNow))
}

func TestValidateNewRecord_GapInSequenceAllowed(t *testing.T) {
	// doses only need to be strictly increasing, not contiguous
	record := newRecord(5, recordNow.Add(-time.Hour))
	assert.NoError(t, ValidateNewRecord(record, []int{1, 2}, recordNow))
}

func TestValidateNewRecord_CheckOrder(t *testing.T) {
	// a future date on a duplicate dose reports the date error first
	record := newRecord(1, recordNow.Add(24*time.Hour))
	err := ValidateNewRecord(record, []int{1}, recordNow)
	assert.ErrorIs(t, err, apperrors.ErrFutureVaccinationDate)
}

func TestValidateNewRecord_ExplicitStatusKept(t *testing.T) {
	record := newRecord(1, recordNow.Add(-time.Hour))
	record.Status = models.RecordCompleted
	require.NoError(t, ValidateNewRecord(record, nil, recordNow))
	assert.Equal(t, models.RecordCompleted, record.Status)
}

func TestValidateNewRecord_UnknownStatus(t *testing.T) {
	record := newRecord(1, recordNow.Add(-time.Hour))
	record.Status = "DONE"
	err := ValidateNewRecord(record, nil, recordNow)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestApplyRecordUpdate_AppliesFields(t *testing.T) {
	record := newRecord(1, recordNow.Add(-48*time.Hour))
	record.Status = models.RecordScheduled

	patch := &dto.UpdateVaccinationRecordRequest{
		VaccinationDate: strPtr("2026-02-28T10:00:00"),
		NextDoseDate:    strPtr("2026-03-28T10:00:00"),
		BatchNumber:     strPtr("B-42"),
		Status:          strPtr("COMPLETED"),
		Notes:           strPtr("no side effects"),
	}

	require.NoError(t, ApplyRecordUpdate(record, patch, 0, recordNow))

	assert.Equal(t, time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC), record.VaccinationDate)
	require.NotNil(t, record.NextDoseDate)
	assert.Equal(t, time.Date(2026, 3, 28, 10, 0, 0, 0, time.UTC), *record.NextDoseDate)
	assert.Equal(t, "B-42", record.BatchNumber)
	assert.Equal(t, models.RecordCompleted, record.Status)
	assert.Equal(t, "no side effects", record.Notes)
}

func TestApplyRecordUpdate_NoPartialApplication(t *testing.T) {
	record := newRecord(1, recordNow.Add(-48*time.Hour))
	record.Status = models.RecordScheduled
	record.BatchNumber = "B-1"

	// valid batch number alongside an invalid date: nothing may change
	patch := &dto.UpdateVaccinationRecordRequest{
		BatchNumber:     strPtr("B-99"),
		VaccinationDate: strPtr("not-a-date"),
	}

	err := ApplyRecordUpdate(record, patch, 0, recordNow)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateFormat)
	assert.Equal(t, "B-1", record.BatchNumber)
	assert.Equal(t, time.Date(2026, 2, 27, 12, 0, 0, 0, time.UTC), record.VaccinationDate)
}

func TestApplyRecordUpdate_FutureDateRejected(t *testing.T) {
	record := newRecord(1, recordNow.Add(-48*time.Hour))
	patch := &dto.UpdateVaccinationRecordRequest{
		VaccinationDate: strPtr("2026-03-02T10:00:00"),
	}
	err := ApplyRecordUpdate(record, patch, 0, recordNow)
	assert.ErrorIs(t, err, apperrors.ErrFutureVaccinationDate)
}

func TestApplyRecordUpdate_DoseSequence(t *testing.T) {
	record := newRecord(2, recordNow.Add(-48*time.Hour))

	err := ApplyRecordUpdate(record, &dto.UpdateVaccinationRecordRequest{DoseNumber: intPtr(3)}, 3, recordNow)
	assert.ErrorIs(t, err, apperrors.ErrDoseSequence)
	assert.Equal(t, 2, record.DoseNumber)

	require.NoError(t, ApplyRecordUpdate(record, &dto.UpdateVaccinationRecordRequest{DoseNumber: intPtr(4)}, 3, recordNow))
	assert.Equal(t, 4, record.DoseNumber)
}

func TestApplyRecordUpdate_SameDoseIsNoop(t *testing.T) {
	// keeping the current dose number is fine even when other rows
	// already carry higher doses
	record := newRecord(2, recordNow.Add(-48*time.Hour))
	require.NoError(t, ApplyRecordUpdate(record, &dto.UpdateVaccinationRecordRequest{DoseNumber: intPtr(2)}, 5, recordNow))
	assert.Equal(t, 2, record.DoseNumber)
}

func TestApplyRecordUpdate_ClearNextDoseDate(t *testing.T) {
	record := newRecord(1, recordNow.Add(-48*time.Hour))
	next := recordNow.AddDate(0, 0, 28)
	record.NextDoseDate = &next

	require.NoError(t, ApplyRecordUpdate(record, &dto.UpdateVaccinationRecordRequest{NextDoseDate: strPtr("")}, 0, recordNow))
	assert.Nil(t, record.NextDoseDate)
}

func TestApplyRecordUpdate_StatusTransitions(t *testing.T) {
	cases := []struct {
		from    models.RecordStatus
		to      string
		allowed bool
	}{
		{models.RecordScheduled, "COMPLETED", true},
		{models.RecordScheduled, "CANCELLED", true},
		{models.RecordCompleted, "CANCELLED", true},
		{models.RecordCompleted, "SCHEDULED", false},
		{models.RecordCancelled, "SCHEDULED", false},
		{models.RecordCancelled, "COMPLETED", false},
	}

	for _, tc := range cases {
		record := newRecord(1, recordNow.Add(-48*time.Hour))
		record.Status = tc.from

		err := ApplyRecordUpdate(record, &dto.UpdateVaccinationRecordRequest{Status: strPtr(tc.to)}, 0, recordNow)
		if tc.allowed {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, models.RecordStatus(tc.to), record.Status)
		} else {
			assert.ErrorIs(t, err, apperrors.ErrInvalidStatusTransition, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.from, record.Status)
		}
	}
}

func TestApplyRecordUpdate_SameStatusAllowed(t *testing.T) {
	record := newRecord(1, recordNow.Add(-48*time.Hour))
	record.Status = models.RecordCancelled

	// restating the current status is not a transition
	assert.NoError(t, ApplyRecordUpdate(record, &dto.UpdateVaccinationRecordRequest{Status: strPtr("CANCELLED")}, 0, recordNow))
}

func TestApplyRecordUpdate_UnknownStatus(t *testing.T) {
	record := newRecord(1, recordNow.Add(-48*time.Hour))
	record.Status = models.RecordScheduled

	err := ApplyRecordUpdate(record, &dto.UpdateVaccinationRecordRequest{Status: strPtr("DONE")}, 0, recordNow)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
