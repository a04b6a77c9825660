package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Bounds on numeric input. Exponent notation is accepted, but the integer
// part must fit in 19 digits and the exponent must stay small.
const (
	maxNumberLen    = 40
	maxNumberExp    = 18
	minNumberExp    = -maxNumberLen
	maxIntegerDigit = 19
)

// Number accepts a JSON number or a numeric string. Parsing is left to the
// usecase so that every field problem is reported together.
type Number struct {
	raw  string
	set  bool
	null bool
}

func NumberOf(raw string) Number {
	return Number{raw: strings.TrimSpace(raw), set: true}
}

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*n = Number{set: true, null: true}
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumberOf(s)
	case len(b) > 0 && (b[0] == '-' || (b[0] >= '0' && b[0] <= '9')):
		*n = Number{raw: string(b), set: true}
	default:
		return &json.UnmarshalTypeError{Value: jsonKind(b), Type: reflect.TypeOf(Number{})}
	}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set || n.null {
		return []byte("null"), nil
	}
	if _, err := decimal.NewFromString(n.raw); err == nil {
		return []byte(n.raw), nil
	}
	return json.Marshal(n.raw)
}

// IsSet reports whether the field was present in the payload, null included.
func (n Number) IsSet() bool { return n.set }

func (n Number) IsNull() bool { return n.null }

// IsBlank is true for a present, empty string.
func (n Number) IsBlank() bool { return n.set && !n.null && n.raw == "" }

var (
	ErrNotANumber = errors.New("not a number")
	ErrOutOfRange = errors.New("number out of range")
)

// Parse rejects out-of-range values before any arithmetic runs on them.
func (n Number) Parse() (decimal.Decimal, error) {
	if !n.set || n.null || n.raw == "" {
		return decimal.Zero, ErrNotANumber
	}
	if len(n.raw) > maxNumberLen {
		if strings.Trim(n.raw, "0123456789.eE+-") != "" {
			return decimal.Zero, ErrNotANumber
		}
		return decimal.Zero, ErrOutOfRange
	}
	d, err := decimal.NewFromString(n.raw)
	if err != nil {
		return decimal.Zero, ErrNotANumber
	}
	if !inRange(d) {
		return decimal.Zero, ErrOutOfRange
	}
	return d, nil
}

func (n Number) Decimal() (decimal.Decimal, bool) {
	d, err := n.Parse()
	return d, err == nil
}

// inRange only reads the coefficient and exponent, so it stays cheap for
// inputs like "1e100000000" or "0e-100000000".
func inRange(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if exp > maxNumberExp || exp < minNumberExp {
		return false
	}
	return int64(d.NumDigits())+exp <= maxIntegerDigit
}

// Int64 accepts integral values only; "2.0" is integral, "2.5" is not.
func (n Number) Int64() (int64, bool) {
	d, ok := n.Decimal()
	if !ok || !d.IsInteger() {
		return 0, false
	}
	if i, err := strconv.ParseInt(d.Truncate(0).String(), 10, 64); err == nil {
		return i, true
	}
	return 0, false
}

func jsonKind(b []byte) string {
	if len(b) == 0 {
		return "empty"
	}
	switch b[0] {
	case 't', 'f':
		return "bool"
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return "value"
	}
}
