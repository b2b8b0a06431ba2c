package errors

import stderrors "errors"

// Exception codes shared with the native module and the core collaborator.
const (
	BadRequestCode          = "bad_request"
	UnauthorizedCode        = "unauthorized"
	UnsupportedPlatformCode = "unsupported_platform"
	UnknownErrorCode        = "unknown_error"
)

// UnsupportedPlatformMessage accompanies UnsupportedPlatformCode.
const UnsupportedPlatformMessage = "Unsupported platform"

// ErrUnavailable indicates no native implementation is reachable from the
// running process.
var ErrUnavailable = stderrors.New("platform feature unavailable")

// Exception is the single error shape surfaced to callers.
type Exception struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewException creates an Exception with the given code and message.
func NewException(code, message string) *Exception {
	return &Exception{Code: code, Message: message}
}

// BadRequest creates a bad_request Exception.
func BadRequest(message string) *Exception {
	return NewException(BadRequestCode, message)
}

// Unauthorized creates an unauthorized Exception.
func Unauthorized(message string) *Exception {
	return NewException(UnauthorizedCode, message)
}

// UnsupportedPlatform creates the fixed unsupported_platform Exception.
func UnsupportedPlatform() *Exception {
	return NewException(UnsupportedPlatformCode, UnsupportedPlatformMessage)
}

func (e *Exception) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

// ErrorCode returns the exception code.
func (e *Exception) ErrorCode() string { return e.Code }

// ErrorMessage returns the exception message.
func (e *Exception) ErrorMessage() string { return e.Message }

// Is reports whether target is an Exception with the same code, so callers
// can write errors.Is(err, errors.BadRequest("")).
func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// HasCode reports whether err normalizes to an Exception with the given code.
func HasCode(err error, code string) bool {
	ex := Normalize(err)
	return ex != nil && ex.Code == code
}

// Is reports whether any error in err's chain matches target.
// It forwards to the standard library so callers need only one errors import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
