package runtime

import (
	"github.com/geowire/h3-bridge/geo"
	"github.com/geowire/h3-bridge/h3index"
	"github.com/geowire/h3-bridge/transcoder"
	"github.com/paulmach/orb"
)

// H3IndexesAreNeighbors reports whether two cells share an edge.
// Malformed input or a failed engine call reports false.
func (r *Runtime) H3IndexesAreNeighbors(origin, destination string) bool {
	ow, err := h3index.Parse(origin)
	if err != nil {
		return false
	}
	dw, err := h3index.Parse(destination)
	if err != nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ret, err := r.call32("h3IndexesAreNeighbors",
		uint64(ow.Lo), uint64(ow.Hi), uint64(dw.Lo), uint64(dw.Hi))
	return err == nil && ret != 0
}

// GetH3UnidirectionalEdge returns the directed edge from origin to
// destination, or "" when the cells are not neighbors.
func (r *Runtime) GetH3UnidirectionalEdge(origin, destination string) (string, error) {
	ow, err := h3index.Parse(origin)
	if err != nil {
		return "", err
	}
	dw, err := h3index.Parse(destination)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	lo, hi, err := r.call64("getH3UnidirectionalEdge",
		uint64(ow.Lo), uint64(ow.Hi), uint64(dw.Lo), uint64(dw.Hi))
	if err != nil {
		return "", err
	}
	id, _ := h3index.Optional(lo, hi)
	return id, nil
}

// H3UnidirectionalEdgeIsValid reports whether e names a directed edge the
// engine recognizes.
func (r *Runtime) H3UnidirectionalEdgeIsValid(e string) bool {
	return r.predicate("h3UnidirectionalEdgeIsValid", e)
}

// GetOriginH3IndexFromUnidirectionalEdge returns the edge's origin cell,
// or "" when the engine yields none.
func (r *Runtime) GetOriginH3IndexFromUnidirectionalEdge(e string) (string, error) {
	return r.edgeEndpoint("getOriginH3IndexFromUnidirectionalEdge", e)
}

// GetDestinationH3IndexFromUnidirectionalEdge returns the edge's
// destination cell, or "" when the engine yields none.
func (r *Runtime) GetDestinationH3IndexFromUnidirectionalEdge(e string) (string, error) {
	return r.edgeEndpoint("getDestinationH3IndexFromUnidirectionalEdge", e)
}

func (r *Runtime) edgeEndpoint(export, e string) (string, error) {
	w, err := h3index.Parse(e)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	lo, hi, err := r.call64(export, uint64(w.Lo), uint64(w.Hi))
	if err != nil {
		return "", err
	}
	id, _ := h3index.Optional(lo, hi)
	return id, nil
}

// GetH3IndexesFromUnidirectionalEdge returns the edge's origin and
// destination cells in that order. Both slots are fixed, so an empty slot
// comes back as "".
func (r *Runtime) GetH3IndexesFromUnidirectionalEdge(e string) ([2]string, error) {
	w, err := h3index.Parse(e)
	if err != nil {
		return [2]string{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out, err := r.gw.AllocZeroed(2, transcoder.SizeH3Index)
	if err != nil {
		return [2]string{}, err
	}
	defer r.gw.Free(out)

	if _, err := r.eng.Call("getH3IndexesFromUnidirectionalEdge",
		uint64(w.Lo), uint64(w.Hi), uint64(out)); err != nil {
		return [2]string{}, err
	}

	var cells [2]string
	for i := uint32(0); i < 2; i++ {
		lo, hi, err := r.gw.ReadU32Pair(out + i*transcoder.SizeH3Index)
		if err != nil {
			return [2]string{}, err
		}
		cells[i], _ = h3index.Optional(lo, hi)
	}
	return cells, nil
}

// GetH3UnidirectionalEdgesFromHexagon returns all directed edges leaving
// the cell: six for a hexagon, five for a pentagon.
func (r *Runtime) GetH3UnidirectionalEdgesFromHexagon(h string) ([]string, error) {
	w, err := h3index.Parse(h)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	const maxEdges = 6
	out, err := r.gw.AllocZeroed(maxEdges, transcoder.SizeH3Index)
	if err != nil {
		return nil, err
	}
	defer r.gw.Free(out)

	if _, err := r.eng.Call("getH3UnidirectionalEdgesFromHexagon",
		uint64(w.Lo), uint64(w.Hi), uint64(out)); err != nil {
		return nil, err
	}
	return r.readIdentifierSet(out, maxEdges)
}

// GetH3UnidirectionalEdgeBoundary returns the edge's geometry as an open
// loop in degrees.
func (r *Runtime) GetH3UnidirectionalEdgeBoundary(e string) (geo.Loop, error) {
	return r.boundaryOf("getH3UnidirectionalEdgeBoundary", e)
}

// GetH3UnidirectionalEdgeBoundaryGeoJSON returns the edge's geometry as a
// closed GeoJSON ring in [lng, lat] order.
func (r *Runtime) GetH3UnidirectionalEdgeBoundaryGeoJSON(e string) (orb.Ring, error) {
	loop, err := r.boundaryOf("getH3UnidirectionalEdgeBoundary", e)
	if err != nil {
		return nil, err
	}
	return geo.LoopToRing(loop), nil
}
