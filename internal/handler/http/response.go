package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/enrichx/directory-service/internal/domain/errors"
)

// ResponseError is the error body of every failed API call.
type ResponseError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ResponseSuccess is the body of mutations that return no entity.
type ResponseSuccess struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RespondWithError sends an error response and logs it.
func RespondWithError(c *gin.Context, statusCode int, message string, errorCode string, logger *zap.Logger) {
	logger.Error("API error response",
		zap.Int("status_code", statusCode),
		zap.String("error_message", message),
		zap.String("error_code", errorCode),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
	)

	c.JSON(statusCode, ResponseError{
		Error: message,
		Code:  errorCode,
	})
}

// RespondWithData sends a successful response with just the data.
func RespondWithData(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// RespondWithMessage sends a success/message body.
func RespondWithMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, ResponseSuccess{Success: true, Message: message})
}

// respondWithServiceError maps domain errors onto the API error taxonomy.
func respondWithServiceError(c *gin.Context, err error, logger *zap.Logger) {
	appErr := toAppError(err)
	RespondWithError(c, appErr.StatusCode, appErr.Message, appErr.Code, logger)
}

// toAppError attaches the HTTP status and API code a service error maps to.
// An error that already carries an AppError passes through unchanged.
func toAppError(err error) *domainErrors.AppError {
	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var partial *domainErrors.PartialWriteError
	switch {
	case errors.Is(err, domainErrors.ErrUnauthenticated):
		return domainErrors.NewAppError(err, "authentication required", http.StatusUnauthorized, domainErrors.CodeUnauthenticated)
	case errors.Is(err, domainErrors.ErrForbidden):
		return domainErrors.NewAppError(err, "admin access required", http.StatusForbidden, domainErrors.CodeForbidden)
	case errors.Is(err, domainErrors.ErrUserNotFound):
		return domainErrors.NewAppError(err, "user not found", http.StatusNotFound, domainErrors.CodeNotFound)
	case errors.Is(err, domainErrors.ErrInvalidArgument):
		return domainErrors.NewAppError(err, "invalid request", http.StatusBadRequest, domainErrors.CodeInvalidArgument)
	case errors.As(err, &partial):
		// One write landed, the other did not. Name the failed half so
		// operators can reconcile; nothing was rolled back.
		return domainErrors.NewAppError(err,
			"update partially applied: "+partial.FailedStore+" write failed",
			http.StatusInternalServerError, domainErrors.CodePartialFailure)
	case errors.Is(err, domainErrors.ErrIdentityStore):
		return domainErrors.NewAppError(err, "identity store unavailable", http.StatusInternalServerError, domainErrors.CodeUpstreamFailure)
	case errors.Is(err, domainErrors.ErrProfileStore):
		return domainErrors.NewAppError(err, "profile store unavailable", http.StatusInternalServerError, domainErrors.CodeUpstreamFailure)
	default:
		return domainErrors.NewAppError(err, "internal server error", http.StatusInternalServerError, domainErrors.CodeInternal)
	}
}
