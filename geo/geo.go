// Package geo holds the host-native geometry types and the angular-unit
// conversions used at the engine boundary.
//
// The engine works in radians and returns angles in the domains [0, 180]
// latitude and [0, 360] longitude. Host code works in degrees with the
// canonical signed domains (-90, 90] and (-180, 180]. Every angle crossing
// the boundary passes through exactly one conversion in each direction.
package geo

import "math"

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Loop is an ordered, open sequence of points: no implicit closing point.
// The closed variant exists only for GeoJSON-order output.
type Loop []GeoPoint

// Polygon is one outer loop plus zero or more hole loops. Holes are assumed
// non-overlapping and nested inside the outer loop; the engine does not
// validate this.
type Polygon struct {
	Outer Loop
	Holes []Loop
}

// MultiPolygon is an ordered sequence of independent shapes, each a
// sequence of loops with the outer loop first.
type MultiPolygon [][]Loop

// DegsToRads converts degrees to the engine's native radians.
func DegsToRads(d float64) float64 {
	return d * math.Pi / 180
}

// RadsToDegs converts the engine's native radians to degrees.
func RadsToDegs(r float64) float64 {
	return r * 180 / math.Pi
}

// ConstrainLat remaps a latitude from the engine's [0, 180] domain into the
// canonical (-90, 90].
func ConstrainLat(lat float64) float64 {
	if lat > 90 {
		return lat - 180
	}
	return lat
}

// ConstrainLng remaps a longitude from the engine's [0, 360] domain into
// the canonical (-180, 180].
func ConstrainLng(lng float64) float64 {
	if lng > 180 {
		return lng - 360
	}
	return lng
}
