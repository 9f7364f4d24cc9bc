package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in an operation the error occurred
type Phase string

const (
	PhaseInit      Phase = "init"      // layout verification, engine wiring
	PhaseLoad      Phase = "load"      // engine module loading
	PhaseValidate  Phase = "validate"  // host-side input validation
	PhaseMarshal   Phase = "marshal"   // Go to engine memory
	PhaseUnmarshal Phase = "unmarshal" // engine memory to Go
	PhaseEngine    Phase = "engine"    // engine invocation
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindInvalidIdentifier Kind = "invalid_identifier"
	KindInvalidEnum       Kind = "invalid_enum"
	KindOutOfRange        Kind = "out_of_range"
	KindOutOfBounds       Kind = "out_of_bounds"
	KindAllocation        Kind = "allocation"
	KindEngineFailure     Kind = "engine_failure"
	KindLayoutMismatch    Kind = "layout_mismatch"
	KindMissingExport     Kind = "missing_export"
	KindNotInitialized    Kind = "not_initialized"
	KindInvalidData       Kind = "invalid_data"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string // facade operation or engine export involved
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the operation name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidInput creates a host-side validation error
func InvalidInput(op, detail string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindInvalidInput,
		Op:     op,
		Detail: detail,
	}
}

// InvalidIdentifier creates an error for a malformed cell identifier string
func InvalidIdentifier(s string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindInvalidIdentifier,
		Detail: fmt.Sprintf("malformed identifier %q", s),
		Value:  s,
	}
}

// InvalidResolution creates an error for a resolution outside [0, 15]
func InvalidResolution(op string, res int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindOutOfRange,
		Op:     op,
		Detail: fmt.Sprintf("resolution %d out of range [0, 15]", res),
		Value:  res,
	}
}

// InvalidEnum creates an error for an unrecognized unit value
func InvalidEnum(op string, value any, enumType string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindInvalidEnum,
		Op:     op,
		Detail: fmt.Sprintf("invalid %s value %v", enumType, value),
		Value:  value,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(size uint32) *Error {
	return &Error{
		Phase:  PhaseMarshal,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes in engine memory", size),
	}
}

// EngineFailure creates an error for a non-zero engine status code
func EngineFailure(op string, status int32, likelyCause string) *Error {
	return &Error{
		Phase:  PhaseEngine,
		Kind:   KindEngineFailure,
		Op:     op,
		Detail: fmt.Sprintf("engine returned status %d: %s", status, likelyCause),
		Value:  status,
	}
}

// EngineCall wraps a failed engine invocation
func EngineCall(export string, cause error) *Error {
	return &Error{
		Phase:  PhaseEngine,
		Kind:   KindEngineFailure,
		Op:     export,
		Detail: "engine call failed",
		Cause:  cause,
	}
}

// LayoutMismatch creates a struct-layout verification error. A mismatch
// means the host's offset constants do not describe the engine's compiled
// structs; treat it as fatal.
func LayoutMismatch(structName string, want, got uint32) *Error {
	return &Error{
		Phase:  PhaseInit,
		Kind:   KindLayoutMismatch,
		Detail: fmt.Sprintf("struct %s: host layout is %d bytes, engine reports %d", structName, want, got),
	}
}

// MissingExport creates an error for an engine export that failed to resolve
func MissingExport(name string) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindMissingExport,
		Op:     name,
		Detail: fmt.Sprintf("engine does not export %q", name),
	}
}

// OutOfBounds creates a memory access error
func OutOfBounds(phase Phase, offset uint32, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("memory access out of bounds: offset=%d, length=%d", offset, length),
	}
}

// NotInitialized creates a not-initialized error for a missing collaborator
func NotInitialized(component string) *Error {
	return &Error{
		Phase:  PhaseInit,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
