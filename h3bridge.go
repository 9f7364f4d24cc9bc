package h3bridge

import "context"

// Memory represents the engine's linear memory. All multi-byte access is
// little-endian, matching the engine's compiled layout.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU32(offset uint32) (uint32, error)
	ReadU64(offset uint32) (uint64, error)
	WriteU32(offset uint32, value uint32) error
	WriteU64(offset uint32, value uint64) error
}

// Allocator is the engine's guest-side heap. Blocks returned by Alloc and
// AllocZeroed are at least 8-byte aligned. Free(0) is a no-op; freeing a
// pointer twice, or one not produced by this allocator, is undefined.
type Allocator interface {
	Alloc(size uint32) (uint32, error)
	AllocZeroed(count, stride uint32) (uint32, error)
	Free(ptr uint32)
}

// Engine is the foreign computational engine behind a 32-bit-legalized
// export surface. 64-bit integer returns cross as a 32-bit low word in the
// ordinary return value plus a high word parked in a side-channel slot;
// HighWord must be read before the next Call overwrites it.
//
// Engines are not safe for concurrent use. Callers serialize the whole span
// of an operation, from its first Call through its last Free.
type Engine interface {
	// Call invokes an exported function. Arguments and the result use the
	// raw stack representation: integers zero-extended, floats as their
	// IEEE 754 bit pattern.
	Call(name string, args ...uint64) (uint64, error)

	// HighWord returns the high 32 bits of the most recent 64-bit return.
	HighWord() (uint32, error)

	Memory() Memory
	Allocator() Allocator

	Close(ctx context.Context) error
}
