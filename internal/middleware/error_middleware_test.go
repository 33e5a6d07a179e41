package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schoolvax/vaccine-portal/internal/app/models/dto"
	"github.com/schoolvax/vaccine-portal/internal/pkg/apperrors"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeForbidden},
		{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrDriveNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrVaccineNameExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.ErrVaccineInUse, http.StatusConflict, dto.ErrorCodeResourceInUse},
		{apperrors.ErrDriveConflict, http.StatusConflict, dto.ErrorCodeScheduleConflict},
		{apperrors.ErrDuplicateDose, http.StatusConflict, dto.ErrorCodeDoseSequence},
		{apperrors.ErrDriveLeadTime, http.StatusBadRequest, dto.ErrorCodeScheduleConflict},
		{apperrors.ErrPastDriveImmutable, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.ErrDoseSequence, http.StatusBadRequest, dto.ErrorCodeDoseSequence},
		{apperrors.ErrFutureVaccinationDate, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.ErrInvalidStatusTransition, http.StatusBadRequest, dto.ErrorCodeStatusTransition},
		{apperrors.ErrInvalidDateFormat, http.StatusBadRequest, dto.ErrorCodeInvalidDateFormat},
		{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{errors.New("database exploded"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		status, detail := classifyError(tc.err)
		assert.Equal(t, tc.status, status, "error %v", tc.err)
		assert.Equal(t, tc.code, detail.Code, "error %v", tc.err)
	}
}

func TestClassifyError_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("%w: dose 2 must be greater than the last recorded dose 3", apperrors.ErrDoseSequence)
	status, detail := classifyError(wrapped)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.ErrorCodeDoseSequence, detail.Code)
}
