package value

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindInt Kind = iota
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "INT"
	case KindText:
		return "TEXT"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a tagged scalar: either a 64-bit signed integer or a string.
// The zero Value is Int(0).
type Value struct {
	kind Kind
	i    int64
	s    string
}

func Int(v int64) Value { return Value{kind: KindInt, i: v} }

func Text(s string) Value { return Value{kind: KindText, s: s} }

func (v Value) Kind() Kind { return v.kind }

// Int returns the integer payload. Only meaningful when Kind() == KindInt.
func (v Value) Int() int64 { return v.i }

// Text returns the string payload. Only meaningful when Kind() == KindText.
func (v Value) Text() string { return v.s }

// Compare returns -1, 0 or 1. Integers compare numerically, text compares
// by code point. Comparing across variants is a programming error: the
// schema validation layer guarantees it never happens, so we panic rather
// than return a bogus order.
func (v Value) Compare(o Value) int {
	if v.kind != o.kind {
		panic(fmt.Sprintf("value: cannot compare %s with %s", v.kind, o.kind))
	}
	switch v.kind {
	case KindInt:
		switch {
		case v.i < o.i:
			return -1
		case v.i > o.i:
			return 1
		default:
			return 0
		}
	default:
		return strings.Compare(v.s, o.s)
	}
}

// Equal reports value equality within the same variant.
// Values of different variants are never equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	return v.Compare(o) == 0
}

func (v Value) String() string {
	if v.kind == KindInt {
		return strconv.FormatInt(v.i, 10)
	}
	return v.s
}

// MarshalJSON encodes integers as JSON numbers and text as JSON strings,
// so records cross the wire as plain objects.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindInt {
		return []byte(strconv.FormatInt(v.i, 10)), nil
	}
	return json.Marshal(v.s)
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = Text(s)
		return nil
	}
	var i int64
	if err := json.Unmarshal(b, &i); err == nil {
		*v = Int(i)
		return nil
	}
	return fmt.Errorf("value: unsupported JSON literal: %s", string(b))
}
