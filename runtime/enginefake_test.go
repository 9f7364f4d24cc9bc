package runtime

import (
	"context"
	"encoding/binary"
	"testing"

	h3bridge "github.com/geowire/h3-bridge"
	"github.com/geowire/h3-bridge/errors"
	"github.com/geowire/h3-bridge/transcoder"
)

// fakeMemory is a flat little-endian byte region standing in for engine
// linear memory.
type fakeMemory struct {
	data []byte
}

func (m *fakeMemory) check(offset uint32, length int) error {
	if int(offset)+length > len(m.data) {
		return errors.OutOfBounds(errors.PhaseUnmarshal, offset, length)
	}
	return nil
}

func (m *fakeMemory) Read(offset uint32, length uint32) ([]byte, error) {
	if err := m.check(offset, int(length)); err != nil {
		return nil, err
	}
	return m.data[offset : offset+length], nil
}

func (m *fakeMemory) Write(offset uint32, data []byte) error {
	if err := m.check(offset, len(data)); err != nil {
		return err
	}
	copy(m.data[offset:], data)
	return nil
}

func (m *fakeMemory) ReadU32(offset uint32) (uint32, error) {
	if err := m.check(offset, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(m.data[offset:]), nil
}

func (m *fakeMemory) ReadU64(offset uint32) (uint64, error) {
	if err := m.check(offset, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(m.data[offset:]), nil
}

func (m *fakeMemory) WriteU32(offset uint32, value uint32) error {
	if err := m.check(offset, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(m.data[offset:], value)
	return nil
}

func (m *fakeMemory) WriteU64(offset uint32, value uint64) error {
	if err := m.check(offset, 8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(m.data[offset:], value)
	return nil
}

// trackingAllocator is a bump allocator that records outstanding blocks so
// tests can assert the exactly-one-free discipline across operations.
type trackingAllocator struct {
	mem         *fakeMemory
	next        uint32
	limit       uint32
	outstanding map[uint32]uint32
	allocs      int
	frees       int
	badFrees    int
}

func (a *trackingAllocator) Alloc(size uint32) (uint32, error) {
	if size == 0 {
		size = 1
	}
	ptr := a.next
	a.next += (size + 7) &^ 7 // engine malloc keeps 8-byte alignment
	if a.next > a.limit {
		return 0, errors.AllocationFailed(size)
	}
	a.outstanding[ptr] = size
	a.allocs++
	return ptr, nil
}

func (a *trackingAllocator) AllocZeroed(count, stride uint32) (uint32, error) {
	size := count * stride
	ptr, err := a.Alloc(size)
	if err != nil {
		return 0, err
	}
	for i := uint32(0); i < size; i++ {
		a.mem.data[ptr+i] = 0
	}
	return ptr, nil
}

func (a *trackingAllocator) Free(ptr uint32) {
	if ptr == 0 {
		return
	}
	if _, ok := a.outstanding[ptr]; !ok {
		a.badFrees++
		return
	}
	delete(a.outstanding, ptr)
	a.frees++
}

// handlerEngine is a scripted engine: each export is a Go function over the
// raw argument words. Handlers may write into mem and set highWord to feed
// the 64-bit side channel.
type handlerEngine struct {
	mem      *fakeMemory
	alloc    *trackingAllocator
	handlers map[string]func(args []uint64) (uint64, error)
	highWord uint32
	calls    []string
}

// scratchBase is where handlers hand-place engine-owned structures. The
// bump allocator stays well below it in these tests.
const scratchBase = 0x4000

func newHandlerEngine() *handlerEngine {
	mem := &fakeMemory{data: make([]byte, 64*1024)}
	e := &handlerEngine{
		mem:      mem,
		alloc:    &trackingAllocator{mem: mem, next: 8, limit: scratchBase, outstanding: map[uint32]uint32{}},
		handlers: map[string]func(args []uint64) (uint64, error){},
	}
	for export, size := range map[string]uint32{
		"sizeOfH3Index":          transcoder.SizeH3Index,
		"sizeOfGeoCoord":         transcoder.SizeGeoCoord,
		"sizeOfGeofence":         transcoder.SizeGeofence,
		"sizeOfGeoPolygon":       transcoder.SizeGeoPolygon,
		"sizeOfGeoBoundary":      transcoder.SizeGeoBoundary,
		"sizeOfLinkedGeoPolygon": transcoder.SizeLinkedGeoPolygon,
	} {
		s := size
		e.handlers[export] = func([]uint64) (uint64, error) { return uint64(s), nil }
	}
	return e
}

func (e *handlerEngine) Call(name string, args ...uint64) (uint64, error) {
	e.calls = append(e.calls, name)
	h, ok := e.handlers[name]
	if !ok {
		return 0, errors.MissingExport(name)
	}
	return h(args)
}

func (e *handlerEngine) HighWord() (uint32, error)     { return e.highWord, nil }
func (e *handlerEngine) Memory() h3bridge.Memory       { return e.mem }
func (e *handlerEngine) Allocator() h3bridge.Allocator { return e.alloc }
func (e *handlerEngine) Close(context.Context) error   { return nil }

// returns64 scripts an export yielding both words of a 64-bit identifier.
func (e *handlerEngine) returns64(export string, lo, hi uint32) {
	e.handlers[export] = func([]uint64) (uint64, error) {
		e.highWord = hi
		return uint64(lo), nil
	}
}

// writeIndexAt stores a (low, high) identifier into slot i of an output
// array, the way engine code fills capacity-estimated buffers.
func (e *handlerEngine) writeIndexAt(ptr uint32, i int, lo, hi uint32) {
	base := ptr + uint32(i)*transcoder.SizeH3Index
	binary.LittleEndian.PutUint32(e.mem.data[base:], lo)
	binary.LittleEndian.PutUint32(e.mem.data[base+4:], hi)
}

func (e *handlerEngine) callCount(export string) int {
	n := 0
	for _, c := range e.calls {
		if c == export {
			n++
		}
	}
	return n
}

func newTestRuntime(t *testing.T) (*Runtime, *handlerEngine) {
	t.Helper()
	eng := newHandlerEngine()
	rt, err := New(eng)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return rt, eng
}

// requireNoLeaks fails the test when an operation left foreign memory
// outstanding or freed a pointer it never owned.
func requireNoLeaks(t *testing.T, eng *handlerEngine) {
	t.Helper()
	if n := len(eng.alloc.outstanding); n != 0 {
		t.Fatalf("outstanding allocations = %d, want 0", n)
	}
	if eng.alloc.badFrees != 0 {
		t.Fatalf("badFrees = %d, want 0", eng.alloc.badFrees)
	}
}
