package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidCredentials is returned both for an unknown username and for a wrong
// password. It intentionally carries no detail about which factor failed.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrAccountLocked indicates the account was locked after repeated failed login attempts.
var ErrAccountLocked = errors.New("account is locked")

// ErrAccountInactive indicates the account has not been activated via email verification.
var ErrAccountInactive = errors.New("account is not active")

// ErrInvalidToken covers expired, already consumed and never-issued verification or
// reset tokens. The three cases are deliberately indistinguishable to the caller.
var ErrInvalidToken = errors.New("token is invalid or expired")

// ErrExternalService indicates an outbound verification call (captcha check, OAuth
// token introspection, generation provider) failed or rejected the request.
var ErrExternalService = errors.New("external service error")

// AppError is an error carrying an HTTP status code and a user-facing message.
// Handlers can serialize it directly as the response body.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message}
}

func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message}
}

func NewBadGatewayError(message string) *AppError {
	return &AppError{Code: http.StatusBadGateway, Message: message}
}
