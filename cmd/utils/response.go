package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
)

// ErrorResult is the uniform failure envelope.
type ErrorResult struct {
	Result       bool   `json:"result"`
	ErrorType    string `json:"error_type"`
	ErrorMessage string `json:"error_message"`
}

// Result is the bare success envelope.
type Result struct {
	Result bool `json:"result"`
}

func OK() Result {
	return Result{Result: true}
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// WriteError maps a service error to its envelope. Anything that is not an
// *APIError is surfaced as Unhandled with the error's Go type name, so
// unexpected storage failures stay diagnosable without leaking a stack.
func WriteError(w http.ResponseWriter, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = &APIError{
			Status:  http.StatusBadRequest,
			Type:    fmt.Sprintf("%T", err),
			Message: err.Error(),
		}
	}
	WriteJSON(w, apiErr.Status, ErrorResult{
		Result:       false,
		ErrorType:    apiErr.Type,
		ErrorMessage: apiErr.Message,
	})
}

// Recovery converts a handler panic into the Unhandled envelope.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("Panic handling %s %s: %v", r.Method, r.URL.Path, rec)
				WriteJSON(w, http.StatusBadRequest, ErrorResult{
					Result:       false,
					ErrorType:    fmt.Sprintf("%T", rec),
					ErrorMessage: fmt.Sprintf("%v", rec),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
