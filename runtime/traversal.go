package runtime

import (
	"github.com/geowire/h3-bridge/errors"
	"github.com/geowire/h3-bridge/h3index"
	"github.com/geowire/h3-bridge/transcoder"
)

// KRing returns all cells within k rings of the center cell, center
// included, in no particular order.
func (r *Runtime) KRing(h string, k int) ([]string, error) {
	w, err := h3index.Parse(h)
	if err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, errors.InvalidInput("kRing", "ring size must be non-negative")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	capacity, err := r.call32("maxKringSize", uint64(uint32(k)))
	if err != nil {
		return nil, err
	}
	if capacity == 0 {
		return []string{}, nil
	}

	out, err := r.gw.AllocZeroed(capacity, transcoder.SizeH3Index)
	if err != nil {
		return nil, err
	}
	defer r.gw.Free(out)

	if _, err := r.eng.Call("kRing", uint64(w.Lo), uint64(w.Hi), uint64(uint32(k)), uint64(out)); err != nil {
		return nil, err
	}
	return r.readIdentifierSet(out, capacity)
}

// KRingDistances returns the cells within k rings of the center, grouped
// by their distance from it: element 0 holds the center, element i the
// cells at exactly distance i.
func (r *Runtime) KRingDistances(h string, k int) ([][]string, error) {
	w, err := h3index.Parse(h)
	if err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, errors.InvalidInput("kRingDistances", "ring size must be non-negative")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	capacity, err := r.call32("maxKringSize", uint64(uint32(k)))
	if err != nil {
		return nil, err
	}

	result := make([][]string, k+1)
	for i := range result {
		result[i] = []string{}
	}
	if capacity == 0 {
		return result, nil
	}

	scope := transcoder.NewAllocationList()
	defer scope.FreeAndRelease(r.gw)

	out, err := r.gw.AllocZeroed(capacity, transcoder.SizeH3Index)
	if err != nil {
		return nil, err
	}
	scope.Add(out)

	dist, err := r.gw.AllocZeroed(capacity, 4)
	if err != nil {
		return nil, err
	}
	scope.Add(dist)

	if _, err := r.eng.Call("kRingDistances",
		uint64(w.Lo), uint64(w.Hi), uint64(uint32(k)), uint64(out), uint64(dist)); err != nil {
		return nil, err
	}

	for i := uint32(0); i < capacity; i++ {
		lo, hi, err := r.gw.ReadU32Pair(out + i*transcoder.SizeH3Index)
		if err != nil {
			return nil, err
		}
		if lo == 0 && hi == 0 {
			continue
		}
		d, err := r.gw.ReadI32(dist + i*4)
		if err != nil {
			return nil, err
		}
		if d < 0 || int(d) > k {
			return nil, errors.Wrap(errors.PhaseUnmarshal, errors.KindInvalidData, nil,
				"ring distance out of range")
		}
		result[d] = append(result[d], h3index.Format(lo, hi))
	}
	return result, nil
}

// HexRing returns the hollow ring of cells at exactly distance k from the
// center. The traversal fails when it crosses a pentagonal distortion; the
// input must change, so the failure is surfaced as an error rather than
// retried.
func (r *Runtime) HexRing(h string, k int) ([]string, error) {
	w, err := h3index.Parse(h)
	if err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, errors.InvalidInput("hexRing", "ring size must be non-negative")
	}

	capacity := uint32(6 * k)
	if k == 0 {
		capacity = 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out, err := r.gw.AllocZeroed(capacity, transcoder.SizeH3Index)
	if err != nil {
		return nil, err
	}
	defer r.gw.Free(out)

	status, err := r.call32("hexRing", uint64(w.Lo), uint64(w.Hi), uint64(uint32(k)), uint64(out))
	if err != nil {
		return nil, err
	}
	if status != 0 {
		return nil, errors.EngineFailure("hexRing", int32(status),
			"pentagon distortion encountered in ring")
	}
	return r.readIdentifierSet(out, capacity)
}

// H3ToParent returns the ancestor of h at a coarser resolution.
func (r *Runtime) H3ToParent(h string, res int) (string, error) {
	w, err := h3index.Parse(h)
	if err != nil {
		return "", err
	}
	if err := validResolution("h3ToParent", res); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	lo, hi, err := r.call64("h3ToParent", uint64(w.Lo), uint64(w.Hi), uint64(uint32(res)))
	if err != nil {
		return "", err
	}
	id, ok := h3index.Optional(lo, hi)
	if !ok {
		return "", errors.EngineFailure("h3ToParent", 0, "no parent at the requested resolution")
	}
	return id, nil
}

// H3ToChildren returns h's descendants at a finer resolution.
func (r *Runtime) H3ToChildren(h string, res int) ([]string, error) {
	w, err := h3index.Parse(h)
	if err != nil {
		return nil, err
	}
	if err := validResolution("h3ToChildren", res); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	capacity, err := r.call32("maxH3ToChildrenSize", uint64(w.Lo), uint64(w.Hi), uint64(uint32(res)))
	if err != nil {
		return nil, err
	}
	if int32(capacity) <= 0 {
		return []string{}, nil
	}

	out, err := r.gw.AllocZeroed(capacity, transcoder.SizeH3Index)
	if err != nil {
		return nil, err
	}
	defer r.gw.Free(out)

	if _, err := r.eng.Call("h3ToChildren",
		uint64(w.Lo), uint64(w.Hi), uint64(uint32(res)), uint64(out)); err != nil {
		return nil, err
	}
	return r.readIdentifierSet(out, capacity)
}
