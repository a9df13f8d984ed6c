package lang

import (
	"math/big"
	"strings"
)

// ValueType is the type tag carried by every recorded value.
type ValueType int

const (
	TypeState  ValueType = iota // state
	TypeString                  // string
	TypeInt                     // int
	TypeHex                     // hex
)

// MarshalText implements encoding.TextMarshaler.
func (t ValueType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Value is a typed configuration value.
//
// Text always holds the canonical literal form of the value, which is also
// its stringification when it takes part in concatenation, comparison or a
// function argument: states are "y", "m" or "n", integers are decimal
// without leading zeros, and hex values are "0X" followed by upper-case
// digits.
type Value struct {
	Type ValueType `json:"type" yaml:"type"`
	Text string    `json:"text" yaml:"text"`
}

// StringValue returns a string-typed value.
func StringValue(s string) Value { return Value{Type: TypeString, Text: s} }

// StateValue returns a state-typed value.
func StateValue(s string) Value { return Value{Type: TypeState, Text: s} }

// IntValue returns an int-typed value holding the canonical form of s.
// If s is not a decimal integer, it is kept verbatim.
func IntValue(s string) Value {
	return Value{Type: TypeInt, Text: canonicalInt(s)}
}

// HexValue returns a hex-typed value holding the canonical form of s.
// If s is not a 0x-prefixed hex literal, it is kept verbatim.
func HexValue(s string) Value {
	return Value{Type: TypeHex, Text: canonicalHex(s)}
}

func (v Value) String() string { return v.Text }

// Literal renders the value the way it appears on the right-hand side of an
// assignment in formatted output.
func (v Value) Literal() string {
	if v.Type == TypeString {
		return `"` + strings.ReplaceAll(v.Text, "\n", `\n`) + `"`
	}

	return v.Text
}

func canonicalInt(s string) string {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return s
	}

	return n.String()
}

func canonicalHex(s string) string {
	digits := s
	if len(digits) > 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		digits = digits[2:]
	}

	n, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return s
	}

	return "0X" + strings.ToUpper(n.Text(16))
}
