package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/morikuni/failure/v2"
)

// ErrorCode defines error types for API operations
type ErrorCode string

const (
	// ErrMissingCredential is returned when RAYSURFER_API_KEY is unset or empty
	ErrMissingCredential ErrorCode = "MissingCredential"
	// ErrNetwork represents a transport-level failure reaching the service
	ErrNetwork ErrorCode = "NetworkError"
	// ErrServer represents a non-success response from the service
	ErrServer ErrorCode = "ServerError"
	// ErrInvalidResponse represents a success response whose body could not be decoded
	ErrInvalidResponse ErrorCode = "InvalidResponse"
	// ErrInvalidRequest represents a request rejected by local validation
	ErrInvalidRequest ErrorCode = "InvalidRequest"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

// ServerError is the error wrapped under ErrServer.
// Message is the server-provided message, or the HTTP status text when the
// body did not carry one.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	status := fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message == "" || e.Message == http.StatusText(e.StatusCode) {
		return "server responded " + status
	}
	return fmt.Sprintf("server responded %s: %s", status, e.Message)
}

// Describe returns a short human-readable description of an error returned
// by this package, without the failure call stack.
func Describe(err error) string {
	var se *ServerError
	if errors.As(err, &se) {
		return se.Error()
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Error()
	}
	if msg := failure.MessageOf(err); msg != "" {
		return msg.String()
	}
	return err.Error()
}
