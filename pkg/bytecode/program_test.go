package bytecode

import "testing"

func TestParseCountsPerLine(t *testing.T) {
	src := "chicken\nchicken chicken chicken\n\nchicken chicken"
	p := Parse(src)

	want := []Opcode{1, 3, 0, 2}
	if len(p.Ops) != len(want) {
		t.Fatalf("len = %d, want %d", len(p.Ops), len(want))
	}
	for i, op := range want {
		if p.Ops[i] != op {
			t.Errorf("ops[%d] = %d, want %d", i, p.Ops[i], op)
		}
	}
}

func TestParseNaiveOccurrenceCount(t *testing.T) {
	// Counting ignores word boundaries: a run of the token with no
	// separators still counts every occurrence.
	p := Parse("chickenchicken")
	if len(p.Ops) != 1 || p.Ops[0] != 2 {
		t.Fatalf("ops = %v, want [2]", p.Ops)
	}

	// Decorated occurrences count too.
	p = Parse("chicken-chicken!chicken")
	if p.Ops[0] != 3 {
		t.Errorf("ops[0] = %d, want 3", p.Ops[0])
	}
}

func TestParseBlankLineIsExit(t *testing.T) {
	// A zero-count line is opcode 0, a real instruction; it must not be
	// dropped.
	p := Parse("chicken\n\nchicken")
	if len(p.Ops) != 3 {
		t.Fatalf("len = %d, want 3 (blank line dropped?)", len(p.Ops))
	}
	if p.Ops[1] != OpExit {
		t.Errorf("ops[1] = %d, want 0", p.Ops[1])
	}
}

func TestParseEmptyProgram(t *testing.T) {
	p := Parse("")
	if p.Len() != 0 {
		t.Fatalf("empty source: len = %d, want 0", p.Len())
	}
}

func TestFromOpcodesRoundTrip(t *testing.T) {
	raw := []int64{11, 6, 0}
	p := FromOpcodes(raw)
	got := p.Raw()
	for i := range raw {
		if got[i] != raw[i] {
			t.Fatalf("Raw() = %v, want %v", got, raw)
		}
	}
}
