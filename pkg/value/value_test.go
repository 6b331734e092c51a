package value

import (
	"math"
	"testing"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		v    Value
		kind Kind
	}{
		{Number(5), KindNumber},
		{Number(math.NaN()), KindNumber},
		{Text("chicken"), KindText},
		{Text(""), KindText},
		{Boolean(true), KindBoolean},
		{Boolean(false), KindBoolean},
		{Undefined, KindUndefined},
		{Self, KindSelf},
	}
	for _, tt := range tests {
		if tt.v.Kind() != tt.kind {
			t.Errorf("%v: kind = %v, want %v", tt.v, tt.v.Kind(), tt.kind)
		}
	}
}

func TestNaNIsNumberNotText(t *testing.T) {
	// Number(NaN) and Text("NaN") are distinct values with distinct
	// coercion behavior.
	n := Number(math.NaN())
	s := Text("NaN")

	if !n.IsNumber() || !s.IsText() {
		t.Fatalf("variant confusion: %v %v", n.Kind(), s.Kind())
	}
	if ToText(n) != "NaN" {
		t.Errorf("ToText(Number(NaN)) = %q", ToText(n))
	}
	if !math.IsNaN(ToNumber(s)) {
		t.Errorf("ToNumber(Text(%q)) = %v, want NaN", "NaN", ToNumber(s))
	}
}

func TestPayloadAccessors(t *testing.T) {
	if got := Number(2.5).Num(); got != 2.5 {
		t.Errorf("Num() = %v", got)
	}
	if got := Text("egg").Str(); got != "egg" {
		t.Errorf("Str() = %q", got)
	}
	if !Boolean(true).Bool() || Boolean(false).Bool() {
		t.Error("Bool() payload mismatch")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Number(5), "5"},
		{Number(math.NaN()), "NaN"},
		{Text("chicken"), `"chicken"`},
		{Boolean(true), "true"},
		{Boolean(false), "false"},
		{Undefined, "undefined"},
		{Self, "[stack]"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
