package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Authentication errors
	ErrUnauthenticated = errors.New("not authenticated")
	ErrTokenMissing    = errors.New("no token received")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Remote API errors
	ErrTransport = errors.New("transport failure")
	ErrGraphQL   = errors.New("graphql error")
	ErrNotConfig = errors.New("graphql endpoint is not configured")
)

// Student Errors
var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrInvalidStudentID = errors.New("invalid student ID format")
	ErrNoStudents       = errors.New("no students to export")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
)

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// TransportError is a failed exchange with the remote API: the request never
// produced a usable response, or the response status was not 2xx.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("remote API responded with status %d: %v", e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("remote API request failed: %v", e.Err)
	default:
		return fmt.Sprintf("remote API responded with status %d", e.StatusCode)
	}
}

// Is reports ErrTransport so callers can match the whole class.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// GraphQLMessage is a single entry of a GraphQL "errors" list.
type GraphQLMessage struct {
	Message    string                 `json:"message"`
	Path       []interface{}          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// Code returns extensions.code, or "" when the server sent none.
func (m GraphQLMessage) Code() string {
	if m.Extensions == nil {
		return ""
	}
	code, _ := m.Extensions["code"].(string)
	return code
}

// GraphQLError carries a non-empty GraphQL error list. Its message is the first
// entry verbatim, which is what the user gets to see.
type GraphQLError struct {
	Errors []GraphQLMessage
}

func (e *GraphQLError) Error() string {
	if len(e.Errors) == 0 || e.Errors[0].Message == "" {
		return ErrGraphQL.Error()
	}
	return e.Errors[0].Message
}

func (e *GraphQLError) Is(target error) bool {
	return target == ErrGraphQL
}

// UserMessage returns the message to surface for err, falling back to fallback
// for errors that carry nothing meant for end users.
func UserMessage(err error, fallback string) string {
	var gqlErr *GraphQLError
	if errors.As(err, &gqlErr) {
		return gqlErr.Error()
	}
	var custom *CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	if errors.Is(err, ErrTokenMissing) || errors.Is(err, ErrNoStudents) || errors.Is(err, ErrStudentNotFound) {
		return capitalize(err.Error())
	}
	return fallback
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
