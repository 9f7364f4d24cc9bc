package transcoder

import (
	"encoding/binary"

	"github.com/geowire/h3-bridge/errors"
)

// fakeMemory is a flat little-endian byte region standing in for engine
// linear memory.
type fakeMemory struct {
	data []byte
}

func newFakeMemory(size int) *fakeMemory {
	return &fakeMemory{data: make([]byte, size)}
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

// countingAllocator is a bump allocator that tracks outstanding blocks so
// tests can assert the exactly-one-free discipline.
type countingAllocator struct {
	mem         *fakeMemory
	next        uint32
	outstanding map[uint32]uint32
	allocs      int
	frees       int
	badFrees    int
}

func newCountingAllocator(mem *fakeMemory) *countingAllocator {
	// Start past zero so a null pointer is never a valid block.
	return &countingAllocator{mem: mem, next: 8, outstanding: map[uint32]uint32{}}
}

func (a *countingAllocator) Alloc(size uint32) (uint32, error) {
	if size == 0 {
		size = 1
	}
	ptr := a.next
	a.next += (size + 7) &^ 7 // engine malloc keeps 8-byte alignment
	if int(a.next) > len(a.mem.data) {
		return 0, errors.AllocationFailed(size)
	}
	a.outstanding[ptr] = size
	a.allocs++
	return ptr, nil
}

func (a *countingAllocator) AllocZeroed(count, stride uint32) (uint32, error) {
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

func (a *countingAllocator) Free(ptr uint32) {
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

func (a *countingAllocator) Outstanding() int {
	return len(a.outstanding)
}

func newTestGateway() (*Gateway, *fakeMemory, *countingAllocator) {
	mem := newFakeMemory(1 << 20)
	alloc := newCountingAllocator(mem)
	return NewGateway(mem, alloc), mem, alloc
}
