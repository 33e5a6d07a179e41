package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/schoolvax/vaccine-portal/internal/app/models/dto"
	"github.com/schoolvax/vaccine-portal/internal/pkg/apperrors"
	"github.com/schoolvax/vaccine-portal/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP responses. Controllers
// funnel every service error through here so status codes and error
// codes stay consistent across the API.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classifyError(err)
	if status == http.StatusInternalServerError {
		// Do not leak internals to the client
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
	} else {
		var custom *apperrors.CustomError
		if errors.As(err, &custom) && custom.Message != "" {
			detail = detail.WithDetails(custom.Message)
		} else {
			detail = detail.WithDetails(err.Error())
		}
	}

	c.JSON(status, dto.APIResponse{
		Error:     detail,
		Timestamp: time.Now(),
	})
}

func classifyError(err error) (int, *dto.ErrorDetail) {
	switch {
	// Auth
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenRevoked):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token revoked")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Account is disabled")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")

	// Not found
	case errors.Is(err, apperrors.ErrStudentNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found")
	case errors.Is(err, apperrors.ErrVaccineNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Vaccine not found")
	case errors.Is(err, apperrors.ErrDriveNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Vaccination drive not found")
	case errors.Is(err, apperrors.ErrRecordNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Vaccination record not found")
	case errors.Is(err, apperrors.ErrUserNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")

	// Conflicts
	case errors.Is(err, apperrors.ErrVaccineNameExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Vaccine with this name already exists")
	case errors.Is(err, apperrors.ErrVaccineInUse):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceInUse, "Vaccine is referenced by drives and cannot be deleted")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrDriveConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeScheduleConflict, "Drive conflicts with an existing drive")
	case errors.Is(err, apperrors.ErrDuplicateDose):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeDoseSequence, "This dose is already recorded for the student and drive")
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Resource already exists")

	// Domain rule violations
	case errors.Is(err, apperrors.ErrDriveLeadTime):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeScheduleConflict, "Drive must be scheduled at least 15 days in advance")
	case errors.Is(err, apperrors.ErrPastDriveImmutable):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Past drives cannot be modified")
	case errors.Is(err, apperrors.ErrDoseSequence):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeDoseSequence, "Dose number is out of sequence")
	case errors.Is(err, apperrors.ErrFutureVaccinationDate):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Vaccination date cannot be in the future")
	case errors.Is(err, apperrors.ErrInvalidStatusTransition):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeStatusTransition, "Illegal record status transition")
	case errors.Is(err, apperrors.ErrInvalidDateFormat):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidDateFormat, "Invalid date format")
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")

	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An unexpected error occurred")
	}
}
