package handler

import (
	"errors"
	"net/http"

	"prompt-refiner/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handleServiceError maps service errors to HTTP responses. failureDetail is the
// safe message used for generation failures and unexpected errors.
func handleServiceError(c *gin.Context, err error, failureDetail string) {
	var statusCode int
	var errResp models.ErrorResponse

	switch {
	case errors.Is(err, models.ErrEmptyHistory):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodeValidation, Detail: "Chat history cannot be empty."}
	case errors.Is(err, models.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodeBadRequest, Detail: "Invalid request data"}
	case errors.Is(err, models.ErrUserAlreadyExists):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodeDuplicateUser, Detail: "User already exists"}
	case errors.Is(err, models.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeWrongCredentials, Detail: "Invalid credentials"}
	case errors.Is(err, models.ErrTokenInvalid), errors.Is(err, models.ErrTokenMalformed), errors.Is(err, models.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Detail: "Token is invalid or malformed"}
	case errors.Is(err, models.ErrTokenExpired):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeTokenExpired, Detail: "Token has expired"}
	case errors.Is(err, models.ErrGenerationFailed):
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Code: models.ErrCodeGenerationFailed, Detail: failureDetail}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err), zap.String("path", c.FullPath()))
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Code: models.ErrCodeInternal, Detail: failureDetail}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}

// abortWithBindingError отвечает 400 на тело запроса, не прошедшее валидацию.
func abortWithBindingError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
		Code:   models.ErrCodeValidation,
		Detail: bindingErrorDetail(err),
	})
}
