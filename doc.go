// Package h3bridge provides a marshaling layer between Go and a foreign
// hexagonal-grid geospatial engine compiled to WebAssembly.
//
// The engine operates on 64-bit hierarchical cell identifiers and fixed
// C-layout structures in its own linear memory. This library owns the
// boundary: encoding identifiers across a 32-bit-legalized FFI surface,
// building byte-exact input structures, walking linked output structures
// back into Go values, and keeping every foreign allocation scoped to the
// operation that made it.
//
// # Architecture Overview
//
//	h3bridge/        Root package with Memory, Allocator and Engine interfaces
//	├── runtime/     High-level API: the public operation set
//	├── engine/      wazero-backed Engine implementation
//	├── transcoder/  Struct building, linked-output walking, memory gateway
//	├── h3index/     Cell identifier codec (hex string <-> word pair)
//	├── geo/         Coordinate transform and geometry types
//	└── errors/      Structured error types
//
// # Quick Start
//
//	eng, err := engine.New(ctx, wasmBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close(ctx)
//
//	rt, err := runtime.New(eng)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cell, err := rt.GeoToH3(37.7752, -122.4186, 9)
//	ring, err := rt.KRing(cell, 2)
//
// # Thread Safety
//
// The engine is a single synchronous computational resource: its high-word
// side channel and its heap are shared mutable state. Runtime serializes
// every operation behind one lock; do not call an Engine directly while a
// Runtime owns it.
//
// # Memory Model
//
// Every block allocated in engine memory during an operation is freed
// before that operation returns, on success and failure paths alike. No
// foreign pointer ever escapes the runtime package.
package h3bridge
