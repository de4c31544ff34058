package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/teamreg/internal/app/models/dto"
	"github.com/yigit/teamreg/internal/pkg/apperrors"
	"github.com/yigit/teamreg/internal/pkg/logger"
)

// HandleAPIError maps application errors to JSON error responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classifyError(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Int("status", status).Msg("API request failed")
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}

func classifyError(err error) (int, *dto.ErrorDetail) {
	var customErr *apperrors.CustomError

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
		if errors.As(err, &customErr) && customErr.Details != nil {
			detail.WithDetails(customErr.Details)
		}
		return http.StatusBadRequest, detail

	case errors.Is(err, apperrors.ErrBadRequest), errors.Is(err, apperrors.ErrMemberIndex):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, err.Error())

	case errors.Is(err, apperrors.ErrActivityNotFound), errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")

	case errors.Is(err, apperrors.ErrSubmitInProgress):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, "A submission is already in progress")

	case errors.Is(err, apperrors.ErrStepIncomplete), errors.Is(err, apperrors.ErrInvalidStep):
		return http.StatusUnprocessableEntity, dto.NewErrorDetail(dto.ErrorCodeStepIncomplete, err.Error())

	case errors.Is(err, apperrors.ErrSubmitFailed):
		detail := dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "Registration endpoint rejected the team")
		if msg := apperrors.RemoteMessage(err); msg != "" {
			detail.WithDetails(msg)
		}
		return http.StatusBadGateway, detail

	case errors.Is(err, apperrors.ErrGatewayNotConfigured),
		errors.Is(err, apperrors.ErrLoadFailed),
		errors.Is(err, apperrors.ErrDataUnavailable):
		return http.StatusServiceUnavailable, dto.NewErrorDetail(dto.ErrorCodeDataUnavailable, "Registration data is unavailable").
			WithSeverity(dto.ErrorSeverityCritical)

	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An unexpected error occurred")
	}
}
