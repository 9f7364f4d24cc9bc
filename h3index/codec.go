// Package h3index converts 64-bit cell and edge identifiers between their
// canonical hexadecimal string form and the paired 32-bit word form used
// across the engine's legalized FFI boundary.
//
// A 64-bit identifier never crosses the boundary whole: it is split into a
// low and a high word, and engine functions returning an identifier deposit
// the high word in a side-channel slot. The word pair exists only while a
// call is in flight; everything host-side handles the string form.
package h3index

import (
	"strconv"

	"github.com/geowire/h3-bridge/errors"
)

// Words is the transient paired-word form of a 64-bit identifier.
type Words struct {
	Lo uint32
	Hi uint32
}

// Parse converts a hexadecimal identifier string into its word pair. The
// low word is the last eight hex digits, the high word the remainder.
// Malformed input is an error rather than a sentinel pair; predicates that
// want soft behavior handle the error themselves.
func Parse(s string) (Words, error) {
	if len(s) == 0 || len(s) > 16 {
		return Words{}, errors.InvalidIdentifier(s)
	}

	split := 0
	if len(s) > 8 {
		split = len(s) - 8
	}

	lo, err := strconv.ParseUint(s[split:], 16, 32)
	if err != nil {
		return Words{}, errors.InvalidIdentifier(s)
	}

	var hi uint64
	if split > 0 {
		hi, err = strconv.ParseUint(s[:split], 16, 32)
		if err != nil {
			return Words{}, errors.InvalidIdentifier(s)
		}
	}

	return Words{Lo: uint32(lo), Hi: uint32(hi)}, nil
}

// Format reassembles the canonical lowercase hexadecimal form: the high
// word in minimal hex digits followed by the low word zero-padded to eight.
func Format(lo, hi uint32) string {
	s := strconv.FormatUint(uint64(hi), 16)
	low := strconv.FormatUint(uint64(lo), 16)
	for len(low) < 8 {
		low = "0" + low
	}
	return s + low
}

// FromUint64 splits a whole identifier into its word pair.
func FromUint64(v uint64) Words {
	return Words{Lo: uint32(v), Hi: uint32(v >> 32)}
}

// Uint64 reassembles the whole identifier.
func (w Words) Uint64() uint64 {
	return uint64(w.Hi)<<32 | uint64(w.Lo)
}

// String returns the canonical string form.
func (w Words) String() string {
	return Format(w.Lo, w.Hi)
}

// Optional interprets an identifier returned by an operation whose result
// may be absent. A high word of zero is the engine's reserved "no value"
// encoding; valid identifiers produced by such operations never have it.
func Optional(lo, hi uint32) (string, bool) {
	if hi == 0 {
		return "", false
	}
	return Format(lo, hi), true
}
