package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// leadingNumber matches the longest numeric prefix a user might type:
// "12", "-3.5", ".75", "1e3", "12abc" (matches "12").
var leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseNumber coerces free text to a decimal. Leading whitespace is skipped and
// the longest numeric prefix is used; text with no numeric prefix, or a number
// outside the float64 range, yields zero. Negative values are returned as-is.
func ParseNumber(text string) decimal.Decimal {
	m := leadingNumber.FindString(strings.TrimLeftFunc(text, unicode.IsSpace))
	m = strings.TrimPrefix(m, "+")
	if m == "" {
		return decimal.Zero
	}
	d, err := floatRangeDecimal(m)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// floatRangeDecimal parses s exactly, but only within the magnitude a float64
// can hold. Overflow is an error and underflow is zero, so the exponent of the
// result stays within a few hundred digits.
func floatRangeDecimal(s string) (decimal.Decimal, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return decimal.Zero, err
	}
	if f == 0 {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// Amount is a monetary value that may be blank ("not yet entered").
// The zero value is blank.
type Amount struct {
	value decimal.Decimal
	set   bool
}

// Blank returns the empty placeholder amount.
func Blank() Amount {
	return Amount{}
}

// AmountOf wraps a decimal as a non-blank Amount.
func AmountOf(d decimal.Decimal) Amount {
	return Amount{value: d, set: true}
}

// ParseAmount converts user input to an Amount. The empty string stays blank;
// anything else is coerced with ParseNumber.
func ParseAmount(text string) Amount {
	if text == "" {
		return Blank()
	}
	return AmountOf(ParseNumber(text))
}

// IsBlank reports whether the amount is the empty placeholder.
func (a Amount) IsBlank() bool {
	return !a.set
}

// Decimal returns the numeric value, zero when blank.
func (a Amount) Decimal() decimal.Decimal {
	if !a.set {
		return decimal.Zero
	}
	return a.value
}

// Equal reports whether two amounts are both blank or hold equal values.
func (a Amount) Equal(b Amount) bool {
	if a.set != b.set {
		return false
	}
	return !a.set || a.value.Equal(b.value)
}

func (a Amount) String() string {
	if !a.set {
		return ""
	}
	return a.value.String()
}

// MarshalJSON writes a bare JSON number, or "" when blank.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte(`""`), nil
	}
	return []byte(a.value.String()), nil
}

// UnmarshalJSON accepts a JSON number, a string, or null. Empty strings and
// null decode as blank; non-numeric strings decode as zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*a = Blank()
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding amount %s: %w", data, err)
		}
		*a = ParseAmount(s)
		return nil
	}

	d, err := floatRangeDecimal(string(data))
	if err != nil {
		return fmt.Errorf("decoding amount %s: %w", data, err)
	}
	*a = AmountOf(d)
	return nil
}
