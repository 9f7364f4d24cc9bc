package h3index

import (
	"errors"
	"testing"

	bridgeerrors "github.com/geowire/h3-bridge/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		lo    uint32
		hi    uint32
	}{
		{"res 9 cell", "8928308280fffff", 0x80fffff, 0x8928308},
		{"res 0 cell", "8029fffffffffff", 0xffffffff, 0x8029fff},
		{"directed edge", "16928308280fffff", 0x80fffff, 0x16928308},
		{"short string", "ff", 0xff, 0},
		{"exactly 8 digits", "deadbeef", 0xdeadbeef, 0},
		{"9 digits", "1deadbeef", 0xdeadbeef, 1},
		{"uppercase accepted", "8928308280FFFFF", 0x80fffff, 0x8928308},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if w.Lo != tt.lo || w.Hi != tt.hi {
				t.Errorf("Parse(%q) = {%#x, %#x}, want {%#x, %#x}", tt.input, w.Lo, w.Hi, tt.lo, tt.hi)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	inputs := []string{"", "not hex", "892830828gfffff", "11112222333344445", "0x8928308280fffff"}

	for _, s := range inputs {
		w, err := Parse(s)
		if err == nil {
			t.Errorf("Parse(%q) = %v, want error", s, w)
			continue
		}
		var berr *bridgeerrors.Error
		if !errors.As(err, &berr) || berr.Kind != bridgeerrors.KindInvalidIdentifier {
			t.Errorf("Parse(%q) error = %v, want invalid_identifier", s, err)
		}
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	// Identifiers of the engine's natural 15- and 16-digit widths round-trip
	// exactly through the word pair.
	ids := []string{
		"8928308280fffff",
		"8029fffffffffff",
		"85283473fffffff",
		"8f2830828052d25",
		"16928308280fffff",
		"119283080ddbffff",
	}

	for _, id := range ids {
		w, err := Parse(id)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", id, err)
		}
		if got := Format(w.Lo, w.Hi); got != id {
			t.Errorf("Format(Parse(%q)) = %q", id, got)
		}
	}
}

func TestFormat_LowWordPadding(t *testing.T) {
	if got := Format(0xff, 0x892); got != "89200000ff" {
		t.Errorf("Format(0xff, 0x892) = %q, want 89200000ff", got)
	}
	if got := Format(0, 0); got != "000000000" {
		t.Errorf("Format(0, 0) = %q, want 000000000", got)
	}
}

func TestWords_Uint64(t *testing.T) {
	w := FromUint64(0x8928308280fffff)
	if w.Lo != 0x80fffff || w.Hi != 0x8928308 {
		t.Errorf("FromUint64 = {%#x, %#x}", w.Lo, w.Hi)
	}
	if w.Uint64() != 0x8928308280fffff {
		t.Errorf("Uint64 = %#x", w.Uint64())
	}
	if w.String() != "8928308280fffff" {
		t.Errorf("String = %q", w.String())
	}
}

func TestOptional(t *testing.T) {
	if id, ok := Optional(0x80fffff, 0x8928308); !ok || id != "8928308280fffff" {
		t.Errorf("Optional(present) = %q, %v", id, ok)
	}
	if id, ok := Optional(0, 0); ok || id != "" {
		t.Errorf("Optional(absent) = %q, %v", id, ok)
	}
	// Even a non-zero low word with a zero high word is the absent encoding.
	if _, ok := Optional(12345, 0); ok {
		t.Error("Optional(lo!=0, hi==0) should be absent")
	}
}
