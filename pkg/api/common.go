package api

import (
	consoleerrors "github.com/chiquitav2/user-console/pkg/errors"
)

// Response is the standard API response wrapper returned by every endpoint,
// on both success and failure paths.
type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// Result returns the payload of a successful response. When the server
// reported success=false the zero value is returned together with an
// application error carrying the server message.
func (r *Response[T]) Result() (T, error) {
	var zero T
	if r == nil {
		return zero, consoleerrors.NewApplicationError("empty response")
	}
	if !r.Success {
		msg := r.Message
		if msg == "" {
			msg = "request was not successful"
		}
		return zero, consoleerrors.NewApplicationError(msg)
	}
	return r.Data, nil
}
