package transcoder

import (
	"github.com/geowire/h3-bridge/geo"
)

// WalkMultiPolygon materializes a linked polygon -> loop -> coordinate
// output structure into host-native form, converting every vertex from
// radians to degrees and constraining it to the canonical domains. When
// geoJSONOrder is set each loop gets a closing vertex equal to its first.
//
// The walk is read-only over borrowed engine memory: nothing is freed here.
// The caller releases the whole structure with one engine call afterward.
func (g *Gateway) WalkMultiPolygon(root uint32, geoJSONOrder bool) (geo.MultiPolygon, error) {
	out := geo.MultiPolygon{}

	for poly := root; poly != 0; {
		next, err := g.mem.ReadU32(poly + OffLinkedPolygonNext)
		if err != nil {
			return nil, err
		}

		firstLoop, err := g.mem.ReadU32(poly + OffLinkedPolygonFirst)
		if err != nil {
			return nil, err
		}

		shape := []geo.Loop{}
		for loopPtr := firstLoop; loopPtr != 0; {
			nextLoop, err := g.mem.ReadU32(loopPtr + OffLinkedLoopNext)
			if err != nil {
				return nil, err
			}

			loop, err := g.walkLoop(loopPtr, geoJSONOrder)
			if err != nil {
				return nil, err
			}
			shape = append(shape, loop)
			loopPtr = nextLoop
		}

		out = append(out, shape)
		poly = next
	}

	return out, nil
}

func (g *Gateway) walkLoop(loopPtr uint32, geoJSONOrder bool) (geo.Loop, error) {
	loop := geo.Loop{}

	coord, err := g.mem.ReadU32(loopPtr + OffLinkedLoopFirst)
	if err != nil {
		return nil, err
	}

	for coord != 0 {
		lat, err := g.ReadF64(coord + OffLinkedCoordVertex + OffGeoCoordLat)
		if err != nil {
			return nil, err
		}
		lng, err := g.ReadF64(coord + OffLinkedCoordVertex + OffGeoCoordLng)
		if err != nil {
			return nil, err
		}

		loop = append(loop, geo.GeoPoint{
			Lat: geo.ConstrainLat(geo.RadsToDegs(lat)),
			Lng: geo.ConstrainLng(geo.RadsToDegs(lng)),
		})

		coord, err = g.mem.ReadU32(coord + OffLinkedCoordNext)
		if err != nil {
			return nil, err
		}
	}

	if geoJSONOrder && len(loop) > 0 {
		loop = append(loop, loop[0])
	}
	return loop, nil
}
