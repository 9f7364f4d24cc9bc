// Package runtime exposes the public operation surface over one engine
// instance: index queries, ring traversal, polygon fill, set compaction,
// directed-edge queries and unit lookups.
//
// Every operation follows one of four fixed protocols against the engine:
//
//	scalar         decode identifiers, one engine call, interpret the result
//	single-struct  allocate one output struct, call, read back, free
//	array          ask the engine for a worst-case capacity, allocate a
//	               zeroed buffer, call, scan all slots skipping the {0,0}
//	               empty-slot sentinel, free
//	geometry       build input structs, call, walk or scan the output,
//	               destroy every input and output struct
//
// Identifiers are validated and all foreign memory for an operation is
// released before any error reaches the caller; there is no retry logic
// anywhere in this layer.
//
// A Runtime serializes operations behind a single lock: the engine's
// high-word side channel and heap cannot service two operations at once.
package runtime
