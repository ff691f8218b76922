package models

import "errors"

// Application-wide standard errors
var (
	// User & Authentication Errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")

	// Token Errors
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// Generation Errors
	ErrGenerationFailed = errors.New("prompt generation failed")

	// Validation Errors
	ErrInvalidInput = errors.New("invalid input data")
	ErrEmptyHistory = errors.New("chat history cannot be empty")
)

// Error codes returned to clients in ErrorResponse.Code.
const (
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeDuplicateUser     = "USER_ALREADY_EXISTS"
	ErrCodeWrongCredentials  = "INVALID_CREDENTIALS"
	ErrCodeTokenInvalid      = "TOKEN_INVALID"
	ErrCodeTokenExpired      = "TOKEN_EXPIRED"
	ErrCodeGenerationFailed  = "GENERATION_FAILED"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// IsValidationError сообщает, относится ли ошибка к ошибкам валидации запроса.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrEmptyHistory)
}
