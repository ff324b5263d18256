package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestBaseError(t *testing.T) {
	t.Run("creates error with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		metadata := map[string]any{"key": "value"}

		err := NewBaseError("test", "test_code", "test message", true, cause, metadata)

		if err.Domain() != "test" {
			t.Errorf("expected domain 'test', got '%s'", err.Domain())
		}
		if err.Code() != "test_code" {
			t.Errorf("expected code 'test_code', got '%s'", err.Code())
		}
		if !err.Retryable() {
			t.Error("expected error to be retryable")
		}
		if err.Unwrap() != cause {
			t.Error("expected error to wrap cause")
		}
		if err.Metadata()["key"] != "value" {
			t.Error("expected metadata to be preserved")
		}
		if err.Timestamp().IsZero() {
			t.Error("expected timestamp to be set")
		}
	})

	t.Run("formats error message correctly", func(t *testing.T) {
		tests := []struct {
			name     string
			cause    error
			expected string
		}{
			{
				name:     "without cause",
				cause:    nil,
				expected: "test message",
			},
			{
				name:     "with cause",
				cause:    errors.New("underlying"),
				expected: "test message: underlying",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := NewBaseError("test", "test_code", "test message", false, tt.cause, nil)
				if err.Error() != tt.expected {
					t.Errorf("expected '%s', got '%s'", tt.expected, err.Error())
				}
			})
		}
	})

	t.Run("adds metadata without mutating the original", func(t *testing.T) {
		orig := NewBaseError("test", "test_code", "test message", false, nil, nil)
		err := orig.WithMetadata("key1", "value1").WithMetadata("key2", 42)

		metadata := err.Metadata()
		if metadata["key1"] != "value1" {
			t.Errorf("expected key1='value1', got '%v'", metadata["key1"])
		}
		if metadata["key2"] != 42 {
			t.Errorf("expected key2=42, got '%v'", metadata["key2"])
		}
		if len(orig.Metadata()) != 0 {
			t.Errorf("expected original metadata untouched, got %v", orig.Metadata())
		}
	})
}

func TestNewHTTPError(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		message   string
		wantMsg   string
		wantCode  string
		retryable bool
	}{
		{"server message wins", 404, "User not found", "User not found", ErrCodeNotFound, false},
		{"generic message", 418, "", "HTTP error: status 418", ErrCodeHTTPStatus, false},
		{"server error", 503, "", "HTTP error: status 503", ErrCodeServer, true},
		{"conflict", 409, "User already exists", "User already exists", ErrCodeConflict, false},
		{"unauthorized", 401, "", "HTTP error: status 401", ErrCodeUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewHTTPError(tt.status, tt.message)
			if err.Error() != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, err.Error())
			}
			if err.Code() != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, err.Code())
			}
			if err.Domain() != DomainHTTP {
				t.Errorf("expected domain %q, got %q", DomainHTTP, err.Domain())
			}
			if err.Retryable() != tt.retryable {
				t.Errorf("expected retryable=%v", tt.retryable)
			}
			if StatusCode(err) != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, StatusCode(err))
			}
		})
	}
}

func TestHelpers(t *testing.T) {
	cause := errors.New("connection refused")
	transport := NewTransportError(ErrCodeNetwork, "failed to make request", cause)
	wrapped := fmt.Errorf("failed to list users: %w", transport)

	if !IsDomainError(wrapped) {
		t.Error("expected wrapped error to be detected as domain error")
	}
	if GetErrorDomain(wrapped) != DomainTransport {
		t.Errorf("expected transport domain, got %s", GetErrorDomain(wrapped))
	}
	if GetErrorCode(wrapped) != ErrCodeNetwork {
		t.Errorf("expected network code, got %s", GetErrorCode(wrapped))
	}
	if !IsErrorCode(wrapped, ErrCodeNetwork) {
		t.Error("expected IsErrorCode to walk the chain")
	}
	if !IsRetryable(wrapped) {
		t.Error("expected network errors to be retryable")
	}
	if !errors.Is(wrapped, cause) {
		t.Error("expected cause to be reachable with errors.Is")
	}
	if StatusCode(wrapped) != 0 {
		t.Error("expected no status on transport errors")
	}
	if got := UserMessage(wrapped); got != "failed to make request: connection refused" {
		t.Errorf("unexpected user message %q", got)
	}

	plain := errors.New("boom")
	if GetErrorCode(plain) != "unknown" || GetErrorDomain(plain) != "unknown" {
		t.Error("expected unknown code and domain for plain errors")
	}
	if UserMessage(plain) != "boom" {
		t.Errorf("unexpected user message %q", UserMessage(plain))
	}
	if UserMessage(nil) != "" {
		t.Error("expected empty message for nil error")
	}
}

func TestNewApplicationError(t *testing.T) {
	err := NewApplicationError("Email already exists")
	if err.Error() != "Email already exists" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if err.Domain() != DomainApplication || err.Code() != ErrCodeRejected {
		t.Errorf("unexpected domain/code %s/%s", err.Domain(), err.Code())
	}
}
