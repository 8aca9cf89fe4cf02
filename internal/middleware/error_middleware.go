package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/app/session"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/logger"
	"github.com/yigit/schooladmin/internal/pkg/validation"
)

// GenericFailureMessage is shown when the backend could not be reached or
// answered with something that is not meant for users.
const GenericFailureMessage = "Something went wrong. Please try again."

// Flasher queues notifications for the next rendered page.
type Flasher interface {
	AddFlash(ctx context.Context, level session.FlashLevel, message string)
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	logger.FromContext(c.Request.Context()).Debug().Err(err).Msg("API request failed")

	var verr *validation.Error
	var gqlErr *apperrors.GraphQLError
	var transportErr *apperrors.TransportError

	switch {
	case errors.As(err, &verr):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, verr.Error())
		errorDetail = errorDetail.WithDetails(dto.FromFieldErrors(verr.Fields).Errors)
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	case errors.Is(err, apperrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
	case errors.Is(err, apperrors.ErrTokenMissing):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "No token received")))
	case errors.Is(err, apperrors.ErrStudentNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, apperrors.UserMessage(err, "Student not found"))))
	case errors.Is(err, apperrors.ErrNoStudents):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "No students to export")))
	case errors.Is(err, apperrors.ErrInvalidStudentID), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeBadRequest, apperrors.UserMessage(err, "Invalid student ID"))))
	case errors.As(err, &gqlErr):
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeBackendRejected, gqlErr.Error()).WithDetails(gqlErr.Errors)))
	case errors.Is(err, apperrors.ErrGraphQL):
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeBackendRejected, apperrors.UserMessage(err, "Backend rejected the request"))))
	case errors.As(err, &transportErr):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "Backend unavailable")))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}

// HandleWebError surfaces err to a browser. An authentication failure
// redirects to the login page and true is returned: the request is answered.
// Anything else becomes an error notification (the GraphQL message verbatim,
// or fallback) and the caller renders or redirects as it sees fit.
func HandleWebError(c *gin.Context, flashes Flasher, err error, fallback string) bool {
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	if errors.Is(err, apperrors.ErrUnauthenticated) {
		log.Info().Str("path", c.Request.URL.Path).Msg("Session rejected, redirecting to login")
		c.Redirect(http.StatusSeeOther, LoginPath)
		c.Abort()
		return true
	}

	log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	flashes.AddFlash(ctx, session.FlashError, WebMessage(err, fallback))
	return false
}

// WebMessage is the text a browser user sees for err.
func WebMessage(err error, fallback string) string {
	if fallback == "" {
		fallback = GenericFailureMessage
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Error()
	}
	return apperrors.UserMessage(err, fallback)
}
