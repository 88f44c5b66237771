package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaan/eduflow/internal/app/models/dto"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
	"github.com/kaan/eduflow/internal/pkg/logger"
)

// HandleAPIError maps domain errors onto HTTP responses. Controllers call it
// for every service error instead of encoding statuses themselves.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, 401, dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrSessionExpired):
		respondError(c, 401, dto.ErrorCodeExpiredSession, "Session expired")
	case errors.Is(err, apperrors.ErrSessionNotFound):
		respondError(c, 401, dto.ErrorCodeSessionNotFound, "Session not found")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, 401, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, 403, dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrUserNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrInstructorNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Instructor not found")
	case errors.Is(err, apperrors.ErrCourseNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Course not found")
	case errors.Is(err, apperrors.ErrChapterNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Chapter not found")
	case errors.Is(err, apperrors.ErrLessonNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Lesson not found")
	case errors.Is(err, apperrors.ErrEnrollmentNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Enrollment not found")
	case errors.Is(err, apperrors.ErrNotificationNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Notification not found")
	case errors.Is(err, apperrors.ErrCartNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Course not in cart")
	case errors.Is(err, apperrors.ErrFAQNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "FAQ not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrEnrollmentExpired):
		respondError(c, 403, dto.ErrorCodeForbidden, "Enrollment has expired")
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, "Already enrolled in this course")
	case errors.Is(err, apperrors.ErrAlreadyReviewed):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, "Course already reviewed")
	case errors.Is(err, apperrors.ErrCourseAlreadyInCart):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, "Course already in cart")
	case errors.Is(err, apperrors.ErrFAQAlreadyExists):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, "FAQ with this question already exists")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrInstructorAlreadyExists):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, "Resource already exists")
	case errors.Is(err, apperrors.ErrMalformedInput):
		respondError(c, 400, dto.ErrorCodeMalformedInput, err.Error())
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, 400, dto.ErrorCodeValidationFailed, err.Error())
	case errors.Is(err, apperrors.ErrUploadTooLarge):
		respondError(c, 413, dto.ErrorCodeUploadTooLarge, "Upload exceeds the size limit")
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respondError(c, 500, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.APIResponse{
		Error:     dto.NewErrorDetail(code, message),
		Timestamp: time.Now(),
	})
}
