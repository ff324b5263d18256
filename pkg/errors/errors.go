package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DomainError is the base interface for all structured errors in the console
type DomainError interface {
	error

	// Domain returns the failure category (e.g., "transport", "http", "application")
	Domain() string

	// Code returns a stable error code
	Code() string

	// Retryable indicates if the operation could succeed if issued again.
	// Nothing in the console retries automatically; this is informational.
	Retryable() bool

	// Metadata returns additional error context
	Metadata() map[string]any

	// WithMetadata adds metadata to the error
	WithMetadata(key string, value any) DomainError

	// Timestamp returns when the error occurred
	Timestamp() time.Time
}

// BaseError is the foundational implementation of DomainError.
// Its Error() text is the user-facing message, followed by the cause when one
// is present, so it can be shown to an operator verbatim.
type BaseError struct {
	domain    string
	code      string
	message   string
	cause     error
	retryable bool
	metadata  map[string]any
	timestamp time.Time
}

func (e *BaseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *BaseError) Unwrap() error            { return e.cause }
func (e *BaseError) Domain() string           { return e.domain }
func (e *BaseError) Code() string             { return e.code }
func (e *BaseError) Message() string          { return e.message }
func (e *BaseError) Retryable() bool          { return e.retryable }
func (e *BaseError) Metadata() map[string]any { return e.metadata }
func (e *BaseError) Timestamp() time.Time     { return e.timestamp }

// NewBaseError creates a new BaseError with the specified parameters
func NewBaseError(domain, code, message string, retryable bool, cause error, metadata map[string]any) *BaseError {
	if metadata == nil {
		metadata = make(map[string]any)
	}

	return &BaseError{
		domain:    domain,
		code:      code,
		message:   message,
		cause:     cause,
		retryable: retryable,
		metadata:  metadata,
		timestamp: time.Now(),
	}
}

// WithMetadata returns a copy of the error with the key added
func (e *BaseError) WithMetadata(key string, value any) DomainError {
	newMeta := make(map[string]any, len(e.metadata)+1)
	for k, v := range e.metadata {
		newMeta[k] = v
	}
	newMeta[key] = value

	return &BaseError{
		domain:    e.domain,
		code:      e.code,
		message:   e.message,
		cause:     e.cause,
		retryable: e.retryable,
		metadata:  newMeta,
		timestamp: e.timestamp,
	}
}

// Standardized Error Codes
const (
	// Transport errors
	ErrCodeRequestBuild      = "request_build_failed"
	ErrCodeNetwork           = "network_error"
	ErrCodeMalformedResponse = "malformed_response"

	// HTTP status errors
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeServer       = "server_error"
	ErrCodeHTTPStatus   = "http_status"

	// Application errors
	ErrCodeRejected = "request_rejected"

	// System errors
	ErrCodeConfiguration = "config_error"
	ErrCodeInvalidInput  = "invalid_input"
)

// Domain Constants
const (
	DomainTransport   = "transport"
	DomainHTTP        = "http"
	DomainApplication = "application"
	DomainConfig      = "config"
	DomainInput       = "input"
)

// MetaStatus is the metadata key holding the HTTP status code
const MetaStatus = "status"

// NewTransportError creates an error for a request that never produced a
// usable response: connection failures, timeouts, undecodable bodies.
func NewTransportError(code, message string, cause error) DomainError {
	return NewBaseError(DomainTransport, code, message, code == ErrCodeNetwork, cause, nil)
}

// NewHTTPError creates an error for a non-2xx response. The message is shown
// as-is; the status code is kept in metadata.
func NewHTTPError(status int, message string) DomainError {
	if message == "" {
		message = fmt.Sprintf("HTTP error: status %d", status)
	}
	retryable := status >= 500 || status == http.StatusTooManyRequests
	return NewBaseError(DomainHTTP, codeForStatus(status), message, retryable, nil,
		map[string]any{MetaStatus: status})
}

// NewApplicationError creates an error for a 2xx response whose envelope
// reported success=false.
func NewApplicationError(message string) DomainError {
	return NewBaseError(DomainApplication, ErrCodeRejected, message, false, nil, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) DomainError {
	return NewBaseError(DomainConfig, ErrCodeConfiguration, message, false, cause, nil)
}

// NewInputError creates an error for invalid caller input
func NewInputError(message string, cause error) DomainError {
	return NewBaseError(DomainInput, ErrCodeInvalidInput, message, false, cause, nil)
}

func codeForStatus(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return ErrCodeBadRequest
	case status == http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case status == http.StatusForbidden:
		return ErrCodeForbidden
	case status == http.StatusNotFound:
		return ErrCodeNotFound
	case status == http.StatusConflict:
		return ErrCodeConflict
	case status >= 500:
		return ErrCodeServer
	default:
		return ErrCodeHTTPStatus
	}
}

// Helper functions for error checking

// AsDomainError finds the first DomainError in the chain
func AsDomainError(err error) (DomainError, bool) {
	var domainErr DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// IsDomainError checks if an error is a DomainError
func IsDomainError(err error) bool {
	_, ok := AsDomainError(err)
	return ok
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if domainErr, ok := AsDomainError(err); ok {
		return domainErr.Retryable()
	}
	return false
}

// GetErrorCode returns the error code if it's a DomainError, otherwise returns "unknown"
func GetErrorCode(err error) string {
	if domainErr, ok := AsDomainError(err); ok {
		return domainErr.Code()
	}
	return "unknown"
}

// GetErrorDomain returns the error domain if it's a DomainError, otherwise returns "unknown"
func GetErrorDomain(err error) string {
	if domainErr, ok := AsDomainError(err); ok {
		return domainErr.Domain()
	}
	return "unknown"
}

// IsErrorCode checks if any error in the chain has the specified code
func IsErrorCode(err error, code string) bool {
	for err != nil {
		if domainErr, ok := err.(DomainError); ok && domainErr.Code() == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// StatusCode returns the HTTP status recorded on an http-domain error, or 0.
func StatusCode(err error) int {
	domainErr, ok := AsDomainError(err)
	if !ok {
		return 0
	}
	if status, ok := domainErr.Metadata()[MetaStatus].(int); ok {
		return status
	}
	return 0
}

// UserMessage returns the text suitable for a notification: the domain
// error's own text, without any context added by callers further up.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var base *BaseError
	if errors.As(err, &base) {
		return base.Error()
	}
	return err.Error()
}
