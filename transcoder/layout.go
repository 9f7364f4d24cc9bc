package transcoder

import (
	h3bridge "github.com/geowire/h3-bridge"
	"github.com/geowire/h3-bridge/errors"
)

// Byte layout of the engine's compiled structs. wasm32: little-endian,
// 4-byte pointers, f64 aligned to 8 bytes.
const (
	// coordinate pair: two f64 angles in radians
	SizeGeoCoord    = 16
	OffGeoCoordLat  = 0
	OffGeoCoordLng  = 8

	// loop record: i32 vertex count + pointer to a separately allocated
	// coordinate array (the allocator guarantees its 8-byte alignment)
	SizeGeofence        = 8
	OffGeofenceNumVerts = 0
	OffGeofenceVerts    = 4

	// polygon record: loop record embedded in place, then hole metadata
	SizeGeoPolygon        = 16
	OffGeoPolygonGeofence = 0
	OffGeoPolygonNumHoles = 8
	OffGeoPolygonHoles    = 12

	// boundary record: i32 vertex count, 4 bytes of padding so the first
	// embedded coordinate pair lands on an 8-byte boundary
	SizeGeoBoundary     = 168
	OffGeoBoundaryVerts = 8
	MaxGeoBoundaryVerts = 10

	// stored 64-bit identifier
	SizeH3Index = 8

	// linked output nodes: first-child pointer at offset 0, next-sibling
	// pointer at a fixed offset per node type
	SizeLinkedGeoPolygon  = 12
	OffLinkedPolygonFirst = 0
	OffLinkedPolygonNext  = 8

	SizeLinkedGeoLoop  = 12
	OffLinkedLoopFirst = 0
	OffLinkedLoopNext  = 8

	SizeLinkedGeoCoord   = 24
	OffLinkedCoordVertex = 0
	OffLinkedCoordNext   = 16
)

// layoutChecks pairs each host-side size constant with the engine's
// introspection export reporting the compiled size.
var layoutChecks = []struct {
	structName string
	export     string
	want       uint32
}{
	{"H3Index", "sizeOfH3Index", SizeH3Index},
	{"GeoCoord", "sizeOfGeoCoord", SizeGeoCoord},
	{"Geofence", "sizeOfGeofence", SizeGeofence},
	{"GeoPolygon", "sizeOfGeoPolygon", SizeGeoPolygon},
	{"GeoBoundary", "sizeOfGeoBoundary", SizeGeoBoundary},
	{"LinkedGeoPolygon", "sizeOfLinkedGeoPolygon", SizeLinkedGeoPolygon},
}

// VerifyLayout compares the offset constants above against the struct sizes
// the engine itself reports. Run once at startup; a mismatch means this
// build of the engine does not match the layouts compiled into this package
// and nothing else in the library is safe to call.
func VerifyLayout(eng h3bridge.Engine) error {
	for _, c := range layoutChecks {
		ret, err := eng.Call(c.export)
		if err != nil {
			return errors.EngineCall(c.export, err)
		}
		if got := uint32(ret); got != c.want {
			return errors.LayoutMismatch(c.structName, c.want, got)
		}
	}
	return nil
}
