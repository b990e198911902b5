package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping and retry policy.
type Kind string

const (
	KindValidation           Kind = "VALIDATION"
	KindNotFound             Kind = "NOT_FOUND"
	KindDirectoryUnavailable Kind = "DIRECTORY_UNAVAILABLE"
	KindStorage              Kind = "STORAGE"
)

// AppError is the domain error carried across service boundaries.
// Storage errors are the caller's responsibility to retry; validation
// and not-found errors are never retried.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidation(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewDirectoryUnavailable(err error) *AppError {
	return &AppError{Kind: KindDirectoryUnavailable, Message: "user directory lookup failed", Err: err}
}

func NewStorage(err error) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Kind: KindStorage, Message: "storage operation failed", Err: err}
}

func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

func IsValidation(err error) bool { return IsKind(err, KindValidation) }
func IsNotFound(err error) bool   { return IsKind(err, KindNotFound) }
func IsStorage(err error) bool    { return IsKind(err, KindStorage) }
