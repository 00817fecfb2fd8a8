package utils

import (
	"fmt"
	"net/http"
)

// APIError is the typed error every service operation returns on failure.
// Type is the machine-readable kind echoed in the response envelope.
type APIError struct {
	Status  int
	Type    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func NotFound(format string, args ...interface{}) *APIError {
	return &APIError{Status: http.StatusNotFound, Type: "NotFound", Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *APIError {
	return &APIError{Status: http.StatusConflict, Type: "Conflict", Message: fmt.Sprintf(format, args...)}
}

func Unprocessable(format string, args ...interface{}) *APIError {
	return &APIError{Status: http.StatusUnprocessableEntity, Type: "UnprocessableEntity", Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *APIError {
	return &APIError{Status: http.StatusUnprocessableEntity, Type: "ValidationError", Message: fmt.Sprintf(format, args...)}
}

func IOError(format string, args ...interface{}) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Type: "IOError", Message: fmt.Sprintf(format, args...)}
}
