package platform

import (
	"fmt"

	"github.com/okhi/okverify/pkg/errors"
)

// toFloat64 converts various numeric types to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}

// ParseMap extracts a map[string]any from an any value.
func ParseMap(value any) map[string]any {
	if value == nil {
		return nil
	}
	if m, ok := value.(map[string]any); ok {
		return m
	}
	if m, ok := value.(map[any]any); ok {
		converted := make(map[string]any, len(m))
		for key, val := range m {
			if keyString, ok := key.(string); ok {
				converted[keyString] = val
			}
		}
		return converted
	}
	return nil
}

// StringField returns m[key] when it holds a string.
func StringField(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// NumberField returns m[key] when it holds a number.
func NumberField(m map[string]any, key string) (float64, bool) {
	v, present := m[key]
	if !present {
		return 0, false
	}
	return toFloat64(v)
}

// ResultBool reads a boolean result from a native reply. Native modules
// either reply with a bare bool or wrap it as {key: bool}.
func ResultBool(channel string, result any, key string) (bool, error) {
	switch v := result.(type) {
	case bool:
		return v, nil
	case map[string]any:
		if b, ok := v[key].(bool); ok {
			return b, nil
		}
	}
	return false, &errors.ParseError{Channel: channel, DataType: "bool", Got: result}
}

// ResultString reads a string result from a native reply, either bare or
// wrapped as {key: string}.
func ResultString(channel string, result any, key string) (string, error) {
	switch v := result.(type) {
	case string:
		return v, nil
	case map[string]any:
		if s, ok := v[key].(string); ok {
			return s, nil
		}
	}
	return "", &errors.ParseError{Channel: channel, DataType: fmt.Sprintf("string (%s)", key), Got: result}
}
