package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseEngine,
				Kind:   KindEngineFailure,
				Op:     "hexRing",
				Detail: "pentagon encountered",
			},
			contains: []string{"[engine]", "engine_failure", "hexRing", "pentagon encountered"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseUnmarshal,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[unmarshal]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseMarshal,
				Kind:   KindAllocation,
				Detail: "engine heap exhausted",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[marshal]", "allocation", "engine heap exhausted", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEngine,
		Kind:  KindEngineFailure,
		Cause: cause,
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestError_Is(t *testing.T) {
	a := &Error{Phase: PhaseValidate, Kind: KindInvalidIdentifier}
	b := &Error{Phase: PhaseValidate, Kind: KindInvalidIdentifier, Detail: "other detail"}
	c := &Error{Phase: PhaseEngine, Kind: KindEngineFailure}

	if !errors.Is(a, b) {
		t.Error("errors with same phase and kind should match")
	}
	if errors.Is(a, c) {
		t.Error("errors with different phase and kind should not match")
	}
	if errors.Is(a, errors.New("plain")) {
		t.Error("structural error should not match a plain error")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := New(PhaseEngine, KindEngineFailure).
		Op("uncompact").
		Value(int32(-2)).
		Cause(cause).
		Detail("target resolution %d finer than input", 15).
		Build()

	if err.Phase != PhaseEngine || err.Kind != KindEngineFailure {
		t.Errorf("unexpected phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if err.Op != "uncompact" {
		t.Errorf("Op = %q, want uncompact", err.Op)
	}
	if err.Detail != "target resolution 15 finer than input" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if err.Cause != cause {
		t.Error("cause not preserved")
	}
	if err.Value != int32(-2) {
		t.Errorf("Value = %v", err.Value)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		phase    Phase
		kind     Kind
		contains string
	}{
		{"InvalidInput", InvalidInput("polyfill", "empty loop"), PhaseValidate, KindInvalidInput, "empty loop"},
		{"InvalidIdentifier", InvalidIdentifier("xyz"), PhaseValidate, KindInvalidIdentifier, `"xyz"`},
		{"InvalidResolution", InvalidResolution("h3ToChildren", 16), PhaseValidate, KindOutOfRange, "16"},
		{"InvalidEnum", InvalidEnum("hexArea", "miles2", "area unit"), PhaseValidate, KindInvalidEnum, "miles2"},
		{"AllocationFailed", AllocationFailed(168), PhaseMarshal, KindAllocation, "168"},
		{"EngineFailure", EngineFailure("hexRing", 2, "pentagon encountered"), PhaseEngine, KindEngineFailure, "status 2"},
		{"LayoutMismatch", LayoutMismatch("GeoBoundary", 168, 176), PhaseInit, KindLayoutMismatch, "GeoBoundary"},
		{"MissingExport", MissingExport("getTempRet0"), PhaseLoad, KindMissingExport, "getTempRet0"},
		{"NotInitialized", NotInitialized("engine"), PhaseInit, KindNotInitialized, "engine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("phase = %s, want %s", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", tt.err.Kind, tt.kind)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("message %q does not contain %q", tt.err.Error(), tt.contains)
			}
		})
	}
}
