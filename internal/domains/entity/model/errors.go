package model

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	CodeNotFound         = "NOT_FOUND"
	CodeValidation       = "VALIDATION_FAILED"
	CodeStoreFailure     = "STORE_FAILURE"
	CodeInvalidID        = "INVALID_ID"
	CodeUnsupportedKind  = "UNSUPPORTED_KIND"
	CodeInternal         = "INTERNAL_ERROR"
	defaultErrorResponse = "Internal server error"
)

// EntityError định nghĩa base error cho entity store và association manager
type EntityError struct {
	Code    string
	Message string
	Err     error
}

func (e *EntityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *EntityError) Unwrap() error {
	return e.Err
}

// ============================================
// ERROR FACTORY FUNCTIONS
// ============================================

func NewNotFound(kind Kind, id int64) *EntityError {
	return &EntityError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %d not found", kind.Label(), id),
	}
}

func NewValidationError(err error) *EntityError {
	return &EntityError{
		Code:    CodeValidation,
		Message: err.Error(),
		Err:     err,
	}
}

// NewStoreFailure bọc lỗi network/backend; action vd "create", "list"
func NewStoreFailure(action string, kind Kind, err error) *EntityError {
	return &EntityError{
		Code:    CodeStoreFailure,
		Message: fmt.Sprintf("failed to %s %s", action, kind.Label()),
		Err:     err,
	}
}

func NewInvalidID(raw string) *EntityError {
	return &EntityError{
		Code:    CodeInvalidID,
		Message: fmt.Sprintf("invalid id: %q", raw),
	}
}

func NewUnsupportedKind(kind string) *EntityError {
	return &EntityError{
		Code:    CodeUnsupportedKind,
		Message: fmt.Sprintf("unsupported entity kind: %q", kind),
	}
}

// ============================================
// ERROR CHECKING FUNCTIONS
// ============================================

func hasCode(err error, code string) bool {
	var e *EntityError
	return errors.As(err, &e) && e.Code == code
}

func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

func IsStoreFailure(err error) bool {
	return hasCode(err, CodeStoreFailure)
}

// GetErrorCode lấy error code từ error
func GetErrorCode(err error) string {
	var e *EntityError
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MapErrorToHTTP chuyển EntityError sang HTTP status, message, code.
// Lỗi store không lộ chi tiết underlying error ra ngoài.
func MapErrorToHTTP(err error) (int, string, string) {
	if err == nil {
		return http.StatusOK, "Success", ""
	}

	var e *EntityError
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, defaultErrorResponse, CodeInternal
	}

	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound, e.Message, e.Code
	case CodeValidation, CodeInvalidID, CodeUnsupportedKind:
		return http.StatusBadRequest, e.Message, e.Code
	case CodeStoreFailure:
		return http.StatusBadGateway, e.Message, e.Code
	default:
		return http.StatusInternalServerError, e.Message, e.Code
	}
}
