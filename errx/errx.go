package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage  = "internal server error"
	DatabaseMessage     = "database operation failed"
	NotFoundMessage     = "not found"
	RedisErrorMessage   = "redis operation failed"
	StorageErrorMessage = "file storage operation failed"
)

var ErrNotFound = errors.New("not found")

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

func NotFound(message string) *AppError {
	return New(ErrNotFound, http.StatusNotFound, message)
}

func BadRequest(message string) *AppError {
	return New(nil, http.StatusBadRequest, message)
}

// WrapStorage wraps a blob store failure.
func WrapStorage(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, StorageErrorMessage)
}

// Status returns the HTTP status carried by err, or 500.
func Status(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// Message returns the safe message carried by err, or the system fallback.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return SystemErrorMessage
}
