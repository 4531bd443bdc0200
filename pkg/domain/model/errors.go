package model

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Response is the JSON body returned to the webhook sender
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

const (
	ResponseStatusOK             = "OK"
	ResponseStatusSignatureError = "Signature Validation Error"
	ResponseStatusConfigError    = "Config Validation Error"
	ResponseStatusAPIError       = "API Error"
	ResponseStatusInvalidPayload = "Invalid Payload"
)

// ResponseError is an error that terminates a delivery with a specific response
type ResponseError interface {
	error
	Response() (int, *Response)
}

// ErrorKind identifies the cause of a ResponseError
type ErrorKind string

const (
	ErrKindMalformedHeader      ErrorKind = "malformed_header"
	ErrKindUnsupportedAlgorithm ErrorKind = "unsupported_algorithm"
	ErrKindSignatureMismatch    ErrorKind = "signature_mismatch"
	ErrKindSchemaViolation      ErrorKind = "schema_violation"
	ErrKindTeamNotFound         ErrorKind = "team_not_found"
	ErrKindFileNotFound         ErrorKind = "file_not_found"
	ErrKindInvalidPayload       ErrorKind = "invalid_payload"
)

// SignatureError is returned when a delivery can not be authenticated
type SignatureError struct {
	Kind    ErrorKind
	Message string
}

func (e *SignatureError) Error() string { return e.Message }

func (e *SignatureError) Response() (int, *Response) {
	return http.StatusBadRequest, &Response{
		Status:  ResponseStatusSignatureError,
		Message: e.Message,
	}
}

// Violation is a single schema violation found in a policy document
type Violation struct {
	Field  string
	Reason string
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Reason
	}
	return v.Field + ": " + v.Reason
}

// ConfigError is returned when a policy document does not match the schema
type ConfigError struct {
	Kind       ErrorKind
	Violations []Violation
}

func (e *ConfigError) Error() string {
	return "Config Validation Error: " + e.Diagnostic()
}

// Diagnostic is a human readable description of every violation
func (e *ConfigError) Diagnostic() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return strings.Join(msgs, "; ")
}

func (e *ConfigError) Response() (int, *Response) {
	return http.StatusInternalServerError, &Response{
		Status:  ResponseStatusConfigError,
		Message: e.Diagnostic(),
	}
}

// APIError is a failure of the GitHub API that has a known meaning
type APIError struct {
	Kind    ErrorKind
	Message string
	Detail  string // Message sent back to the webhook sender, if any
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Response() (int, *Response) {
	return http.StatusInternalServerError, &Response{
		Status:  ResponseStatusAPIError,
		Message: e.Detail,
	}
}

// NewTeamNotFoundError reports that no team of org has the given slug
func NewTeamNotFoundError(org, slug string) *APIError {
	return &APIError{
		Kind:    ErrKindTeamNotFound,
		Message: fmt.Sprintf("Team not found: %s/%s", org, slug),
	}
}

// NewFileNotFoundError reports that path does not exist in repoFullName
func NewFileNotFoundError(repoFullName, path string) *APIError {
	return &APIError{
		Kind:    ErrKindFileNotFound,
		Message: fmt.Sprintf("404 Not Found: %s/%s", repoFullName, path),
		Detail:  fmt.Sprintf("File not found: %s/%s", repoFullName, path),
	}
}

// PayloadError is returned when a delivery body lacks required fields
type PayloadError struct {
	Message string
}

func (e *PayloadError) Error() string { return e.Message }

func (e *PayloadError) Response() (int, *Response) {
	return http.StatusBadRequest, &Response{
		Status:  ResponseStatusInvalidPayload,
		Message: e.Message,
	}
}

// IsErrorKind reports whether err, or any error it wraps, carries the given kind
func IsErrorKind(err error, kind ErrorKind) bool {
	var (
		sigErr     *SignatureError
		cfgErr     *ConfigError
		apiErr     *APIError
		payloadErr *PayloadError
	)
	switch {
	case errors.As(err, &sigErr):
		return sigErr.Kind == kind
	case errors.As(err, &cfgErr):
		return cfgErr.Kind == kind
	case errors.As(err, &apiErr):
		return apiErr.Kind == kind
	case errors.As(err, &payloadErr):
		return kind == ErrKindInvalidPayload
	}
	return false
}
