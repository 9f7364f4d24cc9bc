package runtime

import (
	"github.com/geowire/h3-bridge/errors"
	"github.com/geowire/h3-bridge/geo"
	"github.com/geowire/h3-bridge/h3index"
	"github.com/geowire/h3-bridge/transcoder"
	"github.com/paulmach/orb"
)

// H3IsValid reports whether h names a cell the engine recognizes.
// Malformed input or a failed engine call reports false.
func (r *Runtime) H3IsValid(h string) bool {
	return r.predicate("h3IsValid", h)
}

// H3IsPentagon reports whether h is one of the twelve pentagonal cells at
// its resolution.
func (r *Runtime) H3IsPentagon(h string) bool {
	return r.predicate("h3IsPentagon", h)
}

// H3IsResClassIII reports whether h belongs to a Class III (rotated)
// resolution.
func (r *Runtime) H3IsResClassIII(h string) bool {
	return r.predicate("h3IsResClassIII", h)
}

func (r *Runtime) predicate(export, h string) bool {
	w, err := h3index.Parse(h)
	if err != nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ret, err := r.call32(export, uint64(w.Lo), uint64(w.Hi))
	return err == nil && ret != 0
}

// H3GetResolution returns the resolution of a cell or edge.
func (r *Runtime) H3GetResolution(h string) (int, error) {
	return r.cellProperty("h3GetResolution", h)
}

// H3GetBaseCell returns the number of h's base cell (0-121).
func (r *Runtime) H3GetBaseCell(h string) (int, error) {
	return r.cellProperty("h3GetBaseCell", h)
}

func (r *Runtime) cellProperty(export, h string) (int, error) {
	w, err := h3index.Parse(h)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ret, err := r.call32(export, uint64(w.Lo), uint64(w.Hi))
	if err != nil {
		return 0, err
	}
	return int(int32(ret)), nil
}

// GeoToH3 indexes a point, in degrees, to the cell containing it at the
// requested resolution.
func (r *Runtime) GeoToH3(lat, lng float64, res int) (string, error) {
	if err := validResolution("geoToH3", res); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ptr, err := r.gw.Alloc(transcoder.SizeGeoCoord)
	if err != nil {
		return "", err
	}
	defer r.gw.Free(ptr)

	latRad := geo.DegsToRads(geo.ConstrainLat(lat))
	lngRad := geo.DegsToRads(geo.ConstrainLng(lng))
	if err := r.gw.WriteF64Array(ptr, []float64{latRad, lngRad}); err != nil {
		return "", err
	}

	lo, hi, err := r.call64("geoToH3", uint64(ptr), uint64(uint32(res)))
	if err != nil {
		return "", err
	}
	id, ok := h3index.Optional(lo, hi)
	if !ok {
		return "", errors.EngineFailure("geoToH3", 0, "engine produced no index for the coordinates")
	}
	return id, nil
}

// H3ToGeo returns the center point of a cell in degrees.
func (r *Runtime) H3ToGeo(h string) (geo.GeoPoint, error) {
	w, err := h3index.Parse(h)
	if err != nil {
		return geo.GeoPoint{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ptr, err := r.gw.Alloc(transcoder.SizeGeoCoord)
	if err != nil {
		return geo.GeoPoint{}, err
	}
	defer r.gw.Free(ptr)

	if _, err := r.eng.Call("h3ToGeo", uint64(w.Lo), uint64(w.Hi), uint64(ptr)); err != nil {
		return geo.GeoPoint{}, err
	}

	lat, err := r.gw.ReadF64(ptr + transcoder.OffGeoCoordLat)
	if err != nil {
		return geo.GeoPoint{}, err
	}
	lng, err := r.gw.ReadF64(ptr + transcoder.OffGeoCoordLng)
	if err != nil {
		return geo.GeoPoint{}, err
	}

	return geo.GeoPoint{
		Lat: geo.ConstrainLat(geo.RadsToDegs(lat)),
		Lng: geo.ConstrainLng(geo.RadsToDegs(lng)),
	}, nil
}

// H3ToGeoBoundary returns the cell's boundary as an open loop in degrees.
func (r *Runtime) H3ToGeoBoundary(h string) (geo.Loop, error) {
	return r.boundaryOf("h3ToGeoBoundary", h)
}

// H3ToGeoBoundaryGeoJSON returns the cell's boundary as a closed GeoJSON
// ring in [lng, lat] order.
func (r *Runtime) H3ToGeoBoundaryGeoJSON(h string) (orb.Ring, error) {
	loop, err := r.boundaryOf("h3ToGeoBoundary", h)
	if err != nil {
		return nil, err
	}
	return geo.LoopToRing(loop), nil
}

func (r *Runtime) boundaryOf(export, h string) (geo.Loop, error) {
	w, err := h3index.Parse(h)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ptr, err := r.gw.Alloc(transcoder.SizeGeoBoundary)
	if err != nil {
		return nil, err
	}
	defer r.gw.Free(ptr)

	if _, err := r.eng.Call(export, uint64(w.Lo), uint64(w.Hi), uint64(ptr)); err != nil {
		return nil, err
	}
	return r.readBoundary(ptr)
}
