package value

import (
	"math"
	"strconv"
	"strings"
)

// ToNumber coerces v to a float64 the way the host language would.
// Unparseable text, Undefined and the self-reference all become NaN;
// empty text becomes 0.
func ToNumber(v Value) float64 {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindBoolean:
		if v.b {
			return 1
		}
		return 0
	case KindText:
		return parseNumber(v.str)
	default:
		// Undefined, Self
		return math.NaN()
	}
}

// ToText coerces v to its string rendering. Numbers print decimal,
// NaN prints "NaN", booleans print "true"/"false", Undefined prints
// "undefined". The self-reference rendering is implementation-defined.
func ToText(v Value) string {
	switch v.kind {
	case KindNumber:
		return FormatNumber(v.num)
	case KindText:
		return v.str
	case KindBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case KindSelf:
		return "[stack]"
	default:
		return "undefined"
	}
}

// ToBoolean reports whether v is truthy. A number is falsy iff it is zero
// or NaN; text is falsy iff empty; Undefined is falsy; the self-reference
// is truthy.
func ToBoolean(v Value) bool {
	switch v.kind {
	case KindNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case KindText:
		return v.str != ""
	case KindBoolean:
		return v.b
	case KindSelf:
		return true
	default:
		return false
	}
}

// LooseEquals implements the language's coercion-based equality. It is
// total and symmetric over all five variants:
//
//   - same variant: numbers compare numerically (NaN never equals NaN),
//     text by content, booleans by value, Undefined equals Undefined
//   - the self-reference never equals anything, itself included
//   - Undefined never equals any other variant
//   - any remaining mixed pair compares via ToNumber on both sides, which
//     yields true == "1" and false == "0" but true != "true"
func LooseEquals(a, b Value) bool {
	if a.kind == KindSelf || b.kind == KindSelf {
		return false
	}
	if a.kind == b.kind {
		switch a.kind {
		case KindNumber:
			return a.num == b.num
		case KindText:
			return a.str == b.str
		case KindBoolean:
			return a.b == b.b
		default:
			// Undefined == Undefined
			return true
		}
	}
	if a.kind == KindUndefined || b.kind == KindUndefined {
		return false
	}
	return ToNumber(a) == ToNumber(b)
}

// FormatNumber renders a float64 in the host style: integral values print
// without a decimal point, NaN prints "NaN" and the infinities print
// "Infinity"/"-Infinity".
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == math.Trunc(n) && math.Abs(n) < 1e15:
		return strconv.FormatInt(int64(n), 10)
	default:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
}

// parseNumber implements the host's string-to-number conversion: leading
// and trailing whitespace is ignored, the empty string is 0, and anything
// that fails to parse as a numeric literal is NaN.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}
