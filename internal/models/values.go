package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FieldValues maps a field name to its current value (string, bool or integer).
// Values decoded from disk keep JSON numbers as json.Number so they re-encode unchanged.
type FieldValues map[string]any

// Clone returns a shallow copy; values are immutable scalars
func (v FieldValues) Clone() FieldValues {
	if v == nil {
		return nil
	}
	out := make(FieldValues, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Has reports whether name is set
func (v FieldValues) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// String returns the value of name formatted as text
func (v FieldValues) String(name string) string {
	return FormatValue(v[name])
}

// Bool returns the value of name as a boolean; ok is false when it cannot be read as one
func (v FieldValues) Bool(name string) (value bool, ok bool) {
	return ParseBool(v[name])
}

// Int returns the value of name as an integer; ok is false when it cannot be read as one
func (v FieldValues) Int(name string) (value int, ok bool) {
	return ParseInt(v[name])
}

// FormatValue renders a scalar field value as text
func FormatValue(val any) string {
	switch x := val.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case json.Number:
		return x.String()
	case float64:
		if x == math.Trunc(x) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// ParseBool reads booleans, numbers and the usual textual spellings
func ParseBool(val any) (bool, bool) {
	switch x := val.(type) {
	case bool:
		return x, true
	case int:
		return x != 0, true
	case int64:
		return x != 0, true
	case float64:
		return x != 0, true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return false, false
		}
		return f != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "1", "true", "yes", "on", "y":
			return true, true
		case "0", "false", "no", "off", "n", "":
			return false, true
		}
	}
	return false, false
}

// ParseInt reads integers from numbers and numeric strings
func ParseInt(val any) (int, bool) {
	switch x := val.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		if x != math.Trunc(x) {
			return 0, false
		}
		return int(x), true
	case json.Number:
		n, err := strconv.Atoi(x.String())
		if err != nil {
			return 0, false
		}
		return n, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
