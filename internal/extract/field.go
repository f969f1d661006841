package extract

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Field is an optional extracted value from a `{ "value": ... }` wrapper.
//
// Decoding a Field never fails: a missing wrapper, a wrapper without "value",
// a null value, or a value that cannot be coerced to T all leave the Field unset.
type Field[T any] struct {
	value T
	set   bool
}

// Some returns a set Field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Valid reports whether the field carried a usable value.
func (f Field[T]) Valid() bool { return f.set }

// Get returns the value and whether it was set.
func (f Field[T]) Get() (T, bool) { return f.value, f.set }

// Unwrap returns the field's value, or def when the field is unset.
func Unwrap[T any](f Field[T], def T) T {
	if f.set {
		return f.value
	}
	return def
}

// Ptr returns a pointer to the value, or nil when unset.
func Ptr[T any](f Field[T]) *T {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	*f = Field[T]{}
	var wrapper struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil // not an object: absent
	}
	if isNull(wrapper.Value) {
		return nil
	}
	if v, ok := coerce[T](wrapper.Value); ok {
		f.value, f.set = v, true
	}
	return nil
}

// MarshalJSON writes the wrapper back out; unset fields encode as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		Value T `json:"value"`
	}{f.value})
}

// Integer fields (positions, day counts) are bounded to int32 so out-of-range values stay unset.
var (
	maxInt = decimal.NewFromInt(math.MaxInt32)
	minInt = decimal.NewFromInt(math.MinInt32)
)

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// coerce decodes raw into T, accepting the loose shapes LLM output tends to have:
// numbers given as strings, identifiers given as numbers.
func coerce[T any](raw json.RawMessage) (T, bool) {
	var zero T
	var out any
	switch any(zero).(type) {
	case string:
		s, ok := looseString(raw)
		if !ok {
			return zero, false
		}
		out = s
	case float64:
		d, ok := looseDecimal(raw)
		if !ok {
			return zero, false
		}
		out = d.InexactFloat64()
	case int:
		d, ok := looseDecimal(raw)
		if !ok {
			return zero, false
		}
		if !d.IsInteger() || d.GreaterThan(maxInt) || d.LessThan(minInt) {
			return zero, false
		}
		out = int(d.IntPart())
	case bool:
		b, ok := looseBool(raw)
		if !ok {
			return zero, false
		}
		out = b
	case decimal.Decimal:
		d, ok := looseDecimal(raw)
		if !ok {
			return zero, false
		}
		out = d
	default:
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return zero, false
		}
		return v, true
	}
	return out.(T), true
}

func looseString(raw json.RawMessage) (string, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		// keep the literal so identifiers such as 004711 or 1e3 survive unchanged
		return strings.TrimSpace(string(raw)), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

func looseDecimal(raw json.RawMessage) (decimal.Decimal, bool) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return decimal.Zero, false
	}
	switch t := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}

func looseBool(raw json.RawMessage) (bool, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return b, err == nil
	case float64:
		return t != 0, true
	default:
		return false, false
	}
}
