package runtime

import (
	"github.com/geowire/h3-bridge/geo"
	"github.com/geowire/h3-bridge/transcoder"
	"github.com/paulmach/orb"
)

// Polyfill returns all cells at the given resolution whose centers fall
// inside the polygon. An empty outer loop yields an empty result without
// invoking the engine.
func (r *Runtime) Polyfill(p geo.Polygon, res int) ([]string, error) {
	return r.polyfill(p, res, false)
}

// PolyfillPairs is Polyfill over raw coordinate pairs: the first loop is
// the outer boundary, the rest are holes. Pairs are read as [lat, lng], or
// as [lng, lat] when geoJSON is set.
func (r *Runtime) PolyfillPairs(loops [][][2]float64, res int, geoJSON bool) ([]string, error) {
	var p geo.Polygon
	for i, rawLoop := range loops {
		loop := make(geo.Loop, len(rawLoop))
		for j, pair := range rawLoop {
			loop[j] = geo.GeoPoint{Lat: pair[0], Lng: pair[1]}
		}
		if i == 0 {
			p.Outer = loop
		} else {
			p.Holes = append(p.Holes, loop)
		}
	}
	return r.polyfill(p, res, geoJSON)
}

// PolyfillGeoJSON is Polyfill over a GeoJSON-order orb polygon: ring 0 is
// the outer boundary, later rings are holes, coordinates are [lng, lat].
func (r *Runtime) PolyfillGeoJSON(p orb.Polygon, res int) ([]string, error) {
	loops := make([][][2]float64, len(p))
	for i, ring := range p {
		loops[i] = make([][2]float64, len(ring))
		for j, pt := range ring {
			loops[i][j] = [2]float64(pt)
		}
	}
	return r.PolyfillPairs(loops, res, true)
}

func (r *Runtime) polyfill(p geo.Polygon, res int, geoJSONOrder bool) ([]string, error) {
	if err := validResolution("polyfill", res); err != nil {
		return nil, err
	}
	if len(p.Outer) == 0 {
		return []string{}, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	polyPtr, err := r.gw.BuildPolygon(p, geoJSONOrder)
	if err != nil {
		return nil, err
	}
	defer r.gw.DestroyPolygon(polyPtr)

	capacity, err := r.call32("maxPolyfillSize", uint64(polyPtr), uint64(uint32(res)))
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

	if _, err := r.eng.Call("polyfill", uint64(polyPtr), uint64(uint32(res)), uint64(out)); err != nil {
		return nil, err
	}
	return r.readIdentifierSet(out, capacity)
}

// H3SetToMultiPolygon merges a set of cells into polygons describing their
// outline: one entry per disjoint area, outer loop first, holes after,
// loops open and in lat/lng order.
func (r *Runtime) H3SetToMultiPolygon(cells []string) (geo.MultiPolygon, error) {
	return r.setToMultiPolygon(cells, false)
}

// H3SetToMultiPolygonGeoJSON merges a set of cells into a GeoJSON-order
// orb multi-polygon with closed rings in [lng, lat] order.
func (r *Runtime) H3SetToMultiPolygonGeoJSON(cells []string) (orb.MultiPolygon, error) {
	mp, err := r.setToMultiPolygon(cells, true)
	if err != nil {
		return nil, err
	}
	return geo.MultiPolygonToOrb(mp), nil
}

func (r *Runtime) setToMultiPolygon(cells []string, geoJSONOrder bool) (geo.MultiPolygon, error) {
	if len(cells) == 0 {
		return geo.MultiPolygon{}, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	set, err := r.writeIdentifierSet(cells)
	if err != nil {
		return nil, err
	}
	defer r.gw.Free(set)

	root, err := r.gw.AllocZeroed(1, transcoder.SizeLinkedGeoPolygon)
	if err != nil {
		return nil, err
	}
	defer r.gw.Free(root)

	if _, err := r.eng.Call("h3SetToLinkedGeo", uint64(set), uint64(uint32(len(cells))), uint64(root)); err != nil {
		return nil, err
	}
	// The engine owns every node hanging off the root; release them in one
	// bulk call whatever the walk does. The root itself is ours.
	defer r.eng.Call("destroyLinkedPolygon", uint64(root))

	return r.gw.WalkMultiPolygon(root, geoJSONOrder)
}
