package apperrors

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation_error"
	ErrorTypeRead       ErrorType = "read_error"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeStorage    ErrorType = "storage_error"
	ErrorTypeProcessing ErrorType = "processing_error"
	ErrorTypeInternal   ErrorType = "internal_error"
)

// AppError carries a category alongside the wrapped cause so handlers can
// pick a status code without string matching.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
	Context map[string]any
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func New(errType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
	}
}

func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Type:    errType,
			Message: message,
			Err:     err,
			Context: appErr.Context,
		}
	}

	return &AppError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// TypeOf returns the type of the outermost AppError, or ErrorTypeInternal.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, message)
}

func WrapReadError(err error, message string) *AppError {
	return Wrap(err, ErrorTypeRead, message)
}

func WrapNotFoundError(err error, resource string) *AppError {
	return Wrap(err, ErrorTypeNotFound, fmt.Sprintf("%s not found", resource))
}

func WrapStorageError(err error, message string) *AppError {
	return Wrap(err, ErrorTypeStorage, message)
}

func WrapProcessingError(err error, message string) *AppError {
	return Wrap(err, ErrorTypeProcessing, message)
}
