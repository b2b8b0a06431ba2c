// Package platform provides platform channel communication between Go and
// native code. Go calls into the native verification and permission modules
// through method channels, and native or JS hosts call back into Go through
// HandleMethodCall.
package platform

import (
	"encoding/json"

	"github.com/okhi/okverify/pkg/errors"
)

// MessageCodec encodes and decodes messages for platform channel communication.
type MessageCodec interface {
	// Encode converts a Go value to bytes for transmission to native code.
	Encode(value any) ([]byte, error)

	// Decode converts bytes received from native code to a Go value.
	Decode(data []byte) (any, error)
}

// JsonCodec implements MessageCodec using JSON encoding.
type JsonCodec struct{}

// Encode serializes the value to JSON bytes.
func (c JsonCodec) Encode(value any) ([]byte, error) {
	return json.Marshal(value)
}

// Decode deserializes JSON bytes to a Go value.
func (c JsonCodec) Decode(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// DefaultCodec is the codec used by platform channels.
var DefaultCodec MessageCodec = JsonCodec{}

// Standard errors for platform channel operations.
var (
	// ErrChannelNotFound indicates the requested platform channel does not exist.
	ErrChannelNotFound = errors.NewException(errors.BadRequestCode, "platform channel not found")

	// ErrMethodNotFound indicates the method is not implemented on the receiving side.
	ErrMethodNotFound = errors.NewException(errors.BadRequestCode, "method not implemented")

	// ErrPlatformUnavailable indicates no native bridge is installed, which is
	// the case on every platform the native module does not support.
	ErrPlatformUnavailable = errors.ErrUnavailable
)

// ChannelError represents an error returned from native code. Code may be
// empty when the native side rejected without one.
type ChannelError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ChannelError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

// ErrorCode returns the native error code.
func (e *ChannelError) ErrorCode() string { return e.Code }

// ErrorMessage returns the native message verbatim.
func (e *ChannelError) ErrorMessage() string { return e.Message }

// NewChannelError creates a new ChannelError with the given code and message.
func NewChannelError(code, message string) *ChannelError {
	return &ChannelError{Code: code, Message: message}
}
