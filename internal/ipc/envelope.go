package ipc

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by operations on a closed connection.
	ErrClosed = errors.New("ipc connection closed")
	// ErrUnknownKind is reported for messages no handler is registered for.
	ErrUnknownKind = errors.New("unknown message kind")
	// ErrRemote wraps a failure reported by the other side.
	ErrRemote = errors.New("remote handler failed")
	// ErrQueueFull is returned when the outbound queue cannot take a frame.
	ErrQueueFull = errors.New("ipc outbound queue full")
)

// Response is the uniform envelope for request/response messages.
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// OK wraps data in a successful response.
func OK(data any) *Response {
	if data == nil {
		return &Response{Success: true}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return Fail(fmt.Errorf("encode response: %w", err))
	}
	return &Response{Success: true, Data: raw}
}

// Fail wraps err in a failed response.
func Fail(err error) *Response {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &Response{Success: false, Error: msg}
}

// Decode returns the remote error for failed responses, otherwise
// unmarshals Data into v. v may be nil.
func (r *Response) Decode(v any) error {
	if r == nil {
		return fmt.Errorf("%w: empty response", ErrRemote)
	}
	if !r.Success {
		return fmt.Errorf("%w: %s", ErrRemote, r.Error)
	}
	if v == nil || len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
