package geo

import "github.com/paulmach/orb"

// GeoJSON-order conversions. orb geometries use [lng, lat] coordinate order
// and closed rings (first point repeated at the end); the native types here
// use lat/lng fields and open loops.

// LoopToRing converts an open loop to a closed orb ring.
func LoopToRing(l Loop) orb.Ring {
	if len(l) == 0 {
		return orb.Ring{}
	}
	ring := make(orb.Ring, 0, len(l)+1)
	for _, p := range l {
		ring = append(ring, orb.Point{p.Lng, p.Lat})
	}
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}

// RingToLoop converts an orb ring to an open loop, dropping the closing
// point when present.
func RingToLoop(r orb.Ring) Loop {
	if len(r) == 0 {
		return Loop{}
	}
	n := len(r)
	if n > 1 && r[0] == r[n-1] {
		n--
	}
	loop := make(Loop, 0, n)
	for _, pt := range r[:n] {
		loop = append(loop, GeoPoint{Lat: pt.Lat(), Lng: pt.Lon()})
	}
	return loop
}

// PolygonToOrb converts a polygon to an orb polygon: outer ring first,
// holes after.
func PolygonToOrb(p Polygon) orb.Polygon {
	out := make(orb.Polygon, 0, len(p.Holes)+1)
	out = append(out, LoopToRing(p.Outer))
	for _, h := range p.Holes {
		out = append(out, LoopToRing(h))
	}
	return out
}

// OrbToPolygon converts an orb polygon to the native form. An empty orb
// polygon yields a polygon with an empty outer loop.
func OrbToPolygon(p orb.Polygon) Polygon {
	if len(p) == 0 {
		return Polygon{Outer: Loop{}}
	}
	out := Polygon{Outer: RingToLoop(p[0])}
	for _, r := range p[1:] {
		out.Holes = append(out.Holes, RingToLoop(r))
	}
	return out
}

// MultiPolygonToOrb converts a multi-polygon (first loop of each shape is
// the outer ring) to an orb multi-polygon.
func MultiPolygonToOrb(mp MultiPolygon) orb.MultiPolygon {
	out := make(orb.MultiPolygon, 0, len(mp))
	for _, shape := range mp {
		poly := make(orb.Polygon, 0, len(shape))
		for _, loop := range shape {
			poly = append(poly, LoopToRing(loop))
		}
		out = append(out, poly)
	}
	return out
}
