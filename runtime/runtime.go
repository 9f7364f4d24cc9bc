package runtime

import (
	"math"
	"sync"

	h3bridge "github.com/geowire/h3-bridge"
	"github.com/geowire/h3-bridge/errors"
	"github.com/geowire/h3-bridge/geo"
	"github.com/geowire/h3-bridge/h3index"
	"github.com/geowire/h3-bridge/transcoder"
)

// MaxResolution is the finest cell resolution the engine defines.
const MaxResolution = 15

// Runtime is the public operation surface over one engine instance.
//
// All methods are safe for concurrent use: the engine is a single
// synchronous resource, so every operation holds one lock from its first
// engine call through its last foreign-memory free.
type Runtime struct {
	mu  sync.Mutex
	eng h3bridge.Engine
	gw  *transcoder.Gateway
}

// New wires a Runtime to an engine. It verifies the engine's compiled
// struct layouts against this library's offset constants; a mismatch is
// fatal and the engine must not be used.
func New(eng h3bridge.Engine) (*Runtime, error) {
	if eng == nil {
		return nil, errors.NotInitialized("engine")
	}
	if err := transcoder.VerifyLayout(eng); err != nil {
		return nil, err
	}
	return &Runtime{
		eng: eng,
		gw:  transcoder.NewGateway(eng.Memory(), eng.Allocator()),
	}, nil
}

// call32 invokes an export whose result fits in one 32-bit word.
func (r *Runtime) call32(name string, args ...uint64) (uint32, error) {
	ret, err := r.eng.Call(name, args...)
	return uint32(ret), err
}

// call64 invokes an export returning a 64-bit value across the legalized
// boundary: the low word comes back as the ordinary result, the high word
// is read from the side-channel slot before any other engine call can
// overwrite it.
func (r *Runtime) call64(name string, args ...uint64) (lo, hi uint32, err error) {
	ret, err := r.eng.Call(name, args...)
	if err != nil {
		return 0, 0, err
	}
	hi, err = r.eng.HighWord()
	if err != nil {
		return 0, 0, err
	}
	return uint32(ret), hi, nil
}

// callF64 invokes an export returning a 64-bit float.
func (r *Runtime) callF64(name string, args ...uint64) (float64, error) {
	ret, err := r.eng.Call(name, args...)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(ret), nil
}

func validResolution(op string, res int) error {
	if res < 0 || res > MaxResolution {
		return errors.InvalidResolution(op, res)
	}
	return nil
}

// writeIdentifierSet parses every identifier first, so malformed input
// fails before any foreign memory is touched, then stores the set as
// (low, high) word pairs. The caller frees the returned block.
func (r *Runtime) writeIdentifierSet(cells []string) (uint32, error) {
	words := make([]h3index.Words, len(cells))
	for i, c := range cells {
		w, err := h3index.Parse(c)
		if err != nil {
			return 0, err
		}
		words[i] = w
	}

	ptr, err := r.gw.Alloc(uint32(len(cells)) * transcoder.SizeH3Index)
	if err != nil {
		return 0, err
	}
	for i, w := range words {
		if err := r.gw.WriteU32Pair(ptr+uint32(i)*transcoder.SizeH3Index, w.Lo, w.Hi); err != nil {
			r.gw.Free(ptr)
			return 0, err
		}
	}
	return ptr, nil
}

// readIdentifierSet scans every slot of a capacity-sized output array,
// skipping the {0,0} empty-slot sentinel. Unfilled slots can appear
// anywhere in the buffer, not just as a trailing run, so the scan always
// covers the full capacity.
func (r *Runtime) readIdentifierSet(ptr, capacity uint32) ([]string, error) {
	out := make([]string, 0, capacity)
	for i := uint32(0); i < capacity; i++ {
		lo, hi, err := r.gw.ReadU32Pair(ptr + i*transcoder.SizeH3Index)
		if err != nil {
			return nil, err
		}
		if lo == 0 && hi == 0 {
			continue
		}
		out = append(out, h3index.Format(lo, hi))
	}
	return out, nil
}

// readBoundary materializes a boundary record: vertex count, then embedded
// coordinate pairs in radians.
func (r *Runtime) readBoundary(ptr uint32) (geo.Loop, error) {
	n, err := r.gw.ReadI32(ptr)
	if err != nil {
		return nil, err
	}
	if n < 0 || n > transcoder.MaxGeoBoundaryVerts {
		return nil, errors.Wrap(errors.PhaseUnmarshal, errors.KindInvalidData, nil,
			"boundary vertex count out of range")
	}

	loop := make(geo.Loop, 0, n)
	for i := int32(0); i < n; i++ {
		base := ptr + transcoder.OffGeoBoundaryVerts + uint32(i)*transcoder.SizeGeoCoord
		lat, err := r.gw.ReadF64(base + transcoder.OffGeoCoordLat)
		if err != nil {
			return nil, err
		}
		lng, err := r.gw.ReadF64(base + transcoder.OffGeoCoordLng)
		if err != nil {
			return nil, err
		}
		loop = append(loop, geo.GeoPoint{
			Lat: geo.ConstrainLat(geo.RadsToDegs(lat)),
			Lng: geo.ConstrainLng(geo.RadsToDegs(lng)),
		})
	}
	return loop, nil
}
