package transcoder

import (
	"encoding/binary"
	"math"
	"sync"

	h3bridge "github.com/geowire/h3-bridge"
)

type Memory = h3bridge.Memory
type Allocator = h3bridge.Allocator

// Gateway provides scalar and array access to engine memory. It never
// infers stride: callers compute element offsets as base + index*stride.
type Gateway struct {
	mem   Memory
	alloc Allocator
}

func NewGateway(mem Memory, alloc Allocator) *Gateway {
	return &Gateway{mem: mem, alloc: alloc}
}

// Alloc allocates size bytes in engine memory.
func (g *Gateway) Alloc(size uint32) (uint32, error) {
	return g.alloc.Alloc(size)
}

// AllocZeroed allocates count*stride zeroed bytes. Zero is the "empty slot"
// sentinel for capacity-estimated output arrays.
func (g *Gateway) AllocZeroed(count, stride uint32) (uint32, error) {
	return g.alloc.AllocZeroed(count, stride)
}

// Free releases a block. Free(0) is a no-op.
func (g *Gateway) Free(ptr uint32) {
	g.alloc.Free(ptr)
}

// ReadU32 reads an unsigned 32-bit value.
func (g *Gateway) ReadU32(ptr uint32) (uint32, error) {
	return g.mem.ReadU32(ptr)
}

// ReadI32 reads a signed 32-bit value.
func (g *Gateway) ReadI32(ptr uint32) (int32, error) {
	v, err := g.mem.ReadU32(ptr)
	return int32(v), err
}

// ReadF64 reads a 64-bit float.
func (g *Gateway) ReadF64(ptr uint32) (float64, error) {
	v, err := g.mem.ReadU64(ptr)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// WriteF64 writes a 64-bit float.
func (g *Gateway) WriteF64(ptr uint32, v float64) error {
	return g.mem.WriteU64(ptr, math.Float64bits(v))
}

// WriteF64Array writes a contiguous array of 64-bit floats in one store.
func (g *Gateway) WriteF64Array(ptr uint32, values []float64) error {
	if len(values) == 0 {
		return nil
	}
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return g.mem.Write(ptr, buf)
}

// ReadU32Pair reads the (low, high) words of a stored 64-bit identifier.
func (g *Gateway) ReadU32Pair(ptr uint32) (lo, hi uint32, err error) {
	lo, err = g.mem.ReadU32(ptr)
	if err != nil {
		return 0, 0, err
	}
	hi, err = g.mem.ReadU32(ptr + 4)
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

// WriteU32Pair stores a 64-bit identifier as its (low, high) words.
func (g *Gateway) WriteU32Pair(ptr, lo, hi uint32) error {
	if err := g.mem.WriteU32(ptr, lo); err != nil {
		return err
	}
	return g.mem.WriteU32(ptr+4, hi)
}

// AllocationList tracks the blocks allocated during one engine operation so
// they can be released together, on success and failure paths alike.
type AllocationList struct {
	ptrs []uint32
}

var allocationListPool = sync.Pool{
	New: func() any {
		return &AllocationList{ptrs: make([]uint32, 0, 8)}
	},
}

func NewAllocationList() *AllocationList {
	return allocationListPool.Get().(*AllocationList)
}

const maxPooledAllocationCapacity = 128

// Release returns to pool. Must call after Free(); list invalid after Release.
func (al *AllocationList) Release() {
	// Only pool small allocations to prevent memory bloat
	if cap(al.ptrs) > maxPooledAllocationCapacity {
		return
	}
	al.Reset()
	allocationListPool.Put(al)
}

func (al *AllocationList) FreeAndRelease(g *Gateway) {
	al.Free(g)
	al.Release()
}

func (al *AllocationList) Add(ptr uint32) {
	al.ptrs = append(al.ptrs, ptr)
}

func (al *AllocationList) Free(g *Gateway) {
	if g == nil {
		return
	}
	for _, ptr := range al.ptrs {
		if ptr != 0 {
			g.Free(ptr)
		}
	}
	al.ptrs = al.ptrs[:0]
}

func (al *AllocationList) Reset() {
	al.ptrs = al.ptrs[:0]
}

func (al *AllocationList) Count() int {
	return len(al.ptrs)
}
