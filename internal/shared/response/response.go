package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message,omitempty"`
	Data         interface{}   `json:"data,omitempty"`
	Error        *ErrorInfo    `json:"error,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
	Meta         *Meta         `json:"meta,omitempty"`
}

type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Total int    `json:"total"`
	Sort  string `json:"sort,omitempty"`
}

// Notification là toast mà dashboard hiển thị sau một mutation
type Notification struct {
	Type    string `json:"type"` // success | error
	Message string `json:"message"`
}

const (
	NotificationSuccess = "success"
	NotificationError   = "error"
)

// Success responses
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Mutated trả kết quả của create/update/delete kèm notification, vd "Promotion created"
func Mutated(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success:      true,
		Message:      message,
		Data:         data,
		Notification: &Notification{Type: NotificationSuccess, Message: message},
	})
}

// Error responses
func Error(c *gin.Context, statusCode int, message, code string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// MutationFailed: mọi mutation lỗi đều có notification "Failed to <action> <label>"
func MutationFailed(c *gin.Context, statusCode int, action, label, message, code string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
		Notification: &Notification{
			Type:    NotificationError,
			Message: FailureMessage(action, label),
		},
	})
}

func FailureMessage(action, label string) string {
	return fmt.Sprintf("Failed to %s %s", action, label)
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message, "BAD_REQUEST")
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, "NOT_FOUND")
}

func ServiceUnavailable(c *gin.Context, message string) {
	Error(c, http.StatusServiceUnavailable, message, "SERVICE_UNAVAILABLE")
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message, "INTERNAL_SERVER_ERROR")
}
