package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pinshelf/pinshelf-api/pkg/apperror"
)

// Envelope is the uniform response wrapper. Every API outcome, success or
// failure, is serialized through it; only /health bypasses it.
type Envelope[T any] struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      T         `json:"data,omitempty"`
	Meta      any       `json:"meta,omitempty"`
	Error     any       `json:"error,omitempty"`
}

// defaultMessage substitutes the fixed per-outcome string when the caller
// passes an empty message.
func defaultMessage(status int) string {
	switch status {
	case http.StatusOK:
		return "Success"
	case http.StatusCreated:
		return "Created"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "Not Found"
	case http.StatusInternalServerError:
		return "Internal Server Error"
	default:
		return "Error Occurred"
	}
}

func build[T any](c *gin.Context, status int, success bool, data T, message string, meta, errDetail any) Envelope[T] {
	if message == "" {
		message = defaultMessage(status)
	}
	return Envelope[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: c.GetString("request_id"),
		Success:   success,
		Message:   message,
		Data:      data,
		Meta:      meta,
		Error:     errDetail,
	}
}

// Success writes a success envelope with the given status (0 means 200).
func Success[T any](c *gin.Context, status int, data T, message string, meta any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, build(c, status, true, data, message, meta, nil))
}

// Error writes a failure envelope with the given status (0 means 400).
func Error[T any](c *gin.Context, status int, message string, errDetail any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	var zero T
	c.JSON(status, build(c, status, false, zero, message, nil, errDetail))
}

// AbortError writes a failure envelope and aborts the handler chain.
// Middleware uses this; plain handlers use Error.
func AbortError(c *gin.Context, status int, message string, errDetail any) {
	var zero any
	c.AbortWithStatusJSON(status, build(c, status, false, zero, message, nil, errDetail))
}

// FromError is the single error-translation stage. Handlers forward every
// service error here instead of formatting locally.
func FromError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrDeclined):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperror.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		status = http.StatusConflict
	}

	message := ""
	var detail any
	var ae *apperror.AppError
	if errors.As(err, &ae) {
		message = ae.Message
		detail = ae.Details
	} else if status != http.StatusInternalServerError {
		message = err.Error()
	}
	// Unclassified errors keep the default message; internals stay out of
	// the payload.
	Error[any](c, status, message, detail)
}
