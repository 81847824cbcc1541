package http

import (
	"fmt"
	"net/http"

	"github.com/pulseboard/pulseboard/pkg/httpx"
)

// APIError is the JSON error envelope every failure shares. Safe to render
// verbatim to users except server_error, which stays generic: infrastructure
// detail is logged, never returned.
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code.
	Code string `json:"error"`

	// Description is a human-readable description of the error.
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Write writes this APIError to an HTTP response writer.
func (e *APIError) Write(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, e)
}

var (
	// ErrInvalidRequest is returned when the request body is malformed or
	// missing required fields.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        "invalid_request",
		Description: "the request is malformed or missing required parameters",
	}

	// ErrEmailTaken is returned when signup hits the email uniqueness
	// constraint.
	ErrEmailTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        "email_taken",
		Description: "an account with that email already exists",
	}

	// ErrInvalidCredentials is the single login failure. Unknown email and
	// wrong password produce this exact response, status and body alike.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        "invalid_credentials",
		Description: "invalid credentials",
	}

	// ErrInvalidSession is returned when a session token is missing,
	// forged or expired. One response for all three, failing closed.
	ErrInvalidSession = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        "invalid_session",
		Description: "missing or invalid session",
	}

	// ErrServerError hides infrastructure failures behind a generic
	// message.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        "server_error",
		Description: "an internal error occurred",
	}
)
