package model

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeInvalidImage    = "INVALID_IMAGE"
	CodeInvalidFolder   = "INVALID_FOLDER"
	CodeUploadsDisabled = "UPLOADS_DISABLED"
	CodeUploadFailed    = "UPLOAD_FAILED"
)

// ImageError định nghĩa base error cho image pipeline
type ImageError struct {
	Code    string
	Message string
	Err     error
}

func (e *ImageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

func NewInvalidImage(err error) *ImageError {
	return &ImageError{Code: CodeInvalidImage, Message: err.Error(), Err: err}
}

func NewInvalidFolder(folder string) *ImageError {
	return &ImageError{Code: CodeInvalidFolder, Message: fmt.Sprintf("folder %q is not allowed", folder)}
}

var ErrUploadsDisabled = &ImageError{
	Code:    CodeUploadsDisabled,
	Message: "image uploads are disabled for this session",
}

func NewUploadFailed(err error) *ImageError {
	return &ImageError{Code: CodeUploadFailed, Message: "failed to upload image", Err: err}
}

func GetErrorCode(err error) string {
	var e *ImageError
	if errors.As(err, &e) {
		return e.Code
	}
	return "INTERNAL_ERROR"
}

func MapErrorToHTTP(err error) (int, string, string) {
	var e *ImageError
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR"
	}
	switch e.Code {
	case CodeInvalidImage, CodeInvalidFolder:
		return http.StatusBadRequest, e.Message, e.Code
	case CodeUploadsDisabled:
		return http.StatusServiceUnavailable, e.Message, e.Code
	case CodeUploadFailed:
		return http.StatusBadGateway, e.Message, e.Code
	default:
		return http.StatusInternalServerError, e.Message, e.Code
	}
}
