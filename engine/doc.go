// Package engine hosts the foreign geospatial engine with wazero.
//
// The engine is a core WebAssembly module compiled from C with a
// JS-legalized export surface: 64-bit integers cross the boundary as
// 32-bit word pairs, and the high word of a 64-bit return is parked in a
// slot read back through the getTempRet0 export. The module's malloc,
// calloc and free exports back the h3bridge.Allocator, and its linear
// memory backs h3bridge.Memory.
//
// One WazeroEngine owns one instantiated module. It performs no locking
// of its own: the engine's heap and its high-word slot are shared mutable
// state, so callers (normally a runtime.Runtime) serialize every operation
// from its first Call through its last Free.
package engine
