// Package transcoder marshals geometry between Go values and the engine's
// linear memory.
//
// The engine consumes and produces fixed C-layout structures (wasm32,
// little-endian, 4-byte pointers):
//
//	Struct              Size    Layout
//	─────────────────────────────────────────────────────────────
//	coordinate pair     16      lat f64 @0, lng f64 @8 (radians)
//	loop record         8       vertex count i32 @0, coord-array ptr @4
//	boundary record     168     vertex count i32 @0, pad, 10 pairs @8
//	polygon record      16      loop record @0, hole count i32 @8,
//	                            hole-array ptr @12
//	linked polygon      12      first loop @0, last loop @4, next @8
//	linked loop         12      first coord @0, last coord @4, next @8
//	linked coordinate   24      coordinate pair @0, next @16
//
// All offset constants live in this package and nowhere else, and are
// verified once at startup against the engine's own sizeof exports.
//
// # Key Types
//
//	Gateway        - stride-aware scalar/array access over engine memory
//	AllocationList - tracks one operation's allocations for teardown
//
// # Marshaling Flow
//
//  1. BuildPolygon/BuildLoop write input geometry into engine memory
//  2. The engine call populates an output buffer or linked structure
//  3. WalkMultiPolygon (or scalar reads) materialize Go values
//  4. DestroyPolygon/Free release every input and output block
//
// Every allocation made for one engine operation is released before the
// operation returns, on success and failure paths alike.
//
// # Thread Safety
//
// Gateway holds no state beyond its Memory and Allocator; serialization is
// the caller's job because the engine itself is single-threaded.
package transcoder
