package runtime

import (
	"github.com/geowire/h3-bridge/errors"
	"github.com/geowire/h3-bridge/transcoder"
)

// Compact replaces runs of cells that fully cover their parent with the
// parent, recursively, returning the smallest equivalent set. The input
// must be a duplicate-free set of cells at one resolution.
func (r *Runtime) Compact(cells []string) ([]string, error) {
	if len(cells) == 0 {
		return []string{}, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	count := uint32(len(cells))
	in, err := r.writeIdentifierSet(cells)
	if err != nil {
		return nil, err
	}
	defer r.gw.Free(in)

	out, err := r.gw.AllocZeroed(count, transcoder.SizeH3Index)
	if err != nil {
		return nil, err
	}
	defer r.gw.Free(out)

	status, err := r.call32("compact", uint64(in), uint64(out), uint64(count))
	if err != nil {
		return nil, err
	}
	if status != 0 {
		return nil, errors.EngineFailure("compact", int32(status),
			"duplicate or malformed input set")
	}
	return r.readIdentifierSet(out, count)
}

// Uncompact expands a compacted set back to the given resolution. Every
// input cell must be at or above the target resolution.
func (r *Runtime) Uncompact(cells []string, res int) ([]string, error) {
	if err := validResolution("uncompact", res); err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return []string{}, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	count := uint32(len(cells))
	in, err := r.writeIdentifierSet(cells)
	if err != nil {
		return nil, err
	}
	defer r.gw.Free(in)

	capacity, err := r.call32("maxUncompactSize", uint64(in), uint64(count), uint64(uint32(res)))
	if err != nil {
		return nil, err
	}
	if int32(capacity) < 0 {
		return nil, errors.EngineFailure("uncompact", int32(capacity),
			"input contains cells finer than the target resolution")
	}
	if capacity == 0 {
		return []string{}, nil
	}

	out, err := r.gw.AllocZeroed(capacity, transcoder.SizeH3Index)
	if err != nil {
		return nil, err
	}
	defer r.gw.Free(out)

	status, err := r.call32("uncompact",
		uint64(in), uint64(count), uint64(out), uint64(capacity), uint64(uint32(res)))
	if err != nil {
		return nil, err
	}
	if status != 0 {
		return nil, errors.EngineFailure("uncompact", int32(status),
			"input contains cells finer than the target resolution")
	}
	return r.readIdentifierSet(out, capacity)
}
