package errors

import stderrors "errors"

// coded is implemented by errors that carry a native error code.
type coded interface {
	ErrorCode() string
}

// messaged is implemented by errors that carry a native message separate from
// their Error() text.
type messaged interface {
	ErrorMessage() string
}

// codeRule maps a failure to an exception code. Rules are evaluated in order
// and the first match wins.
type codeRule struct {
	name  string
	match func(err error) (string, bool)
}

var codeRules = []codeRule{
	{
		name: "native code",
		match: func(err error) (string, bool) {
			var c coded
			if stderrors.As(err, &c) && c.ErrorCode() != "" {
				return c.ErrorCode(), true
			}
			return "", false
		},
	},
	{
		name: "no bridge",
		match: func(err error) (string, bool) {
			if stderrors.Is(err, ErrUnavailable) {
				return UnsupportedPlatformCode, true
			}
			return "", false
		},
	},
}

// Normalize converts any failure into an Exception. An Exception anywhere in
// the chain is returned unchanged. Otherwise the code comes from the first
// matching rule, falling back to UnknownErrorCode, and the message is kept
// verbatim. Normalize(nil) returns nil.
func Normalize(err error) *Exception {
	if err == nil {
		return nil
	}
	var ex *Exception
	if stderrors.As(err, &ex) {
		return ex
	}
	code := UnknownErrorCode
	for _, r := range codeRules {
		if c, ok := r.match(err); ok {
			code = c
			break
		}
	}
	return &Exception{Code: code, Message: messageOf(err)}
}

func messageOf(err error) string {
	var m messaged
	if stderrors.As(err, &m) {
		return m.ErrorMessage()
	}
	return err.Error()
}

// KindOf classifies err for reporting. Undecodable payloads are KindParsing
// and a missing native bridge is KindPlatform; anything else is fallback.
func KindOf(err error, fallback ErrorKind) ErrorKind {
	var pe *ParseError
	switch {
	case stderrors.As(err, &pe):
		return KindParsing
	case stderrors.Is(err, ErrUnavailable):
		return KindPlatform
	}
	return fallback
}
