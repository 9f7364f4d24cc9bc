// Package errors provides structured error types for the h3-bridge library.
//
// Errors are categorized by Phase (where the error occurred) and Kind
// (error category), plus the operation or engine export involved and a
// cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEngine, errors.KindEngineFailure).
//		Op("hexRing").
//		Detail("pentagon encountered in ring").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidResolution("uncompact", 19)
//	err := errors.EngineFailure("compact", status, "duplicate or malformed input set")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
