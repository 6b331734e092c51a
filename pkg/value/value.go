// Package value implements the chicken runtime value model: a closed tagged
// union of five variants plus the coercion algebra the language inherited
// from its JavaScript host. The language's observable behavior lives almost
// entirely in these conversions, so they are free-standing and total rather
// than methods hidden behind operators, which keeps every conversion path
// independently testable.
package value

import (
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// KindNumber is a float64, including NaN and the infinities.
	KindNumber Kind = iota

	// KindText is a string, including "chicken" and concatenation results.
	KindText

	// KindBoolean is true or false, produced only by Compare.
	KindBoolean

	// KindUndefined is the "no value" result of invalid reads, out-of-range
	// access and empty-stack pops.
	KindUndefined

	// KindSelf is the sentinel at memory address 0 denoting the whole
	// memory region. Only Load resolves it; it never participates in
	// arithmetic.
	KindSelf
)

// String returns a human-readable name for a Kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBoolean:
		return "boolean"
	case KindUndefined:
		return "undefined"
	case KindSelf:
		return "self"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a single chicken runtime value. Values are immutable: every
// operation produces a new Value, never mutates one in place.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
}

// Singleton variants.
var (
	// Undefined is the sole value of KindUndefined.
	Undefined = Value{kind: KindUndefined}

	// Self is the sentinel occupying memory address 0.
	Self = Value{kind: KindSelf}
)

// Number wraps a float64 as a Value. NaN is a legal payload.
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Text wraps a string as a Value.
func Text(s string) Value {
	return Value{kind: KindText, str: s}
}

// Boolean wraps a bool as a Value.
func Boolean(b bool) Value {
	return Value{kind: KindBoolean, b: b}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNumber returns true if v holds a number.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// IsText returns true if v holds text.
func (v Value) IsText() bool { return v.kind == KindText }

// IsBoolean returns true if v holds a boolean.
func (v Value) IsBoolean() bool { return v.kind == KindBoolean }

// IsUndefined returns true if v is the undefined value.
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }

// IsSelf returns true if v is the self-reference sentinel.
func (v Value) IsSelf() bool { return v.kind == KindSelf }

// Num returns the numeric payload. Only meaningful for KindNumber.
func (v Value) Num() float64 { return v.num }

// Str returns the text payload. Only meaningful for KindText.
func (v Value) Str() string { return v.str }

// Bool returns the boolean payload. Only meaningful for KindBoolean.
func (v Value) Bool() bool { return v.b }

// String renders v for stack dumps and the single-step debugger. Text is
// quoted so that Text("5") and Number(5) stay distinguishable in a dump.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return strconv.Quote(v.str)
	case KindSelf:
		return "[stack]"
	default:
		return ToText(v)
	}
}
