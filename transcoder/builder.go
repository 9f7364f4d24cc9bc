package transcoder

import (
	"github.com/geowire/h3-bridge/geo"
)

// Geometry struct construction. The engine expects one contiguous polygon
// record with the outer loop embedded in place and holes in one separately
// allocated array of loop records. This file is the only place that writes
// those layouts.

// writeCoordArray allocates and fills a coordinate-pair array from an open
// loop, converting degrees to radians after constraining each angle to its
// canonical domain. When geoJSONOrder is set the input's Lat field is read
// as longitude and Lng as latitude. An empty loop yields a null pointer.
func (g *Gateway) writeCoordArray(loop geo.Loop, geoJSONOrder bool) (uint32, error) {
	if len(loop) == 0 {
		return 0, nil
	}

	values := make([]float64, 0, 2*len(loop))
	for _, p := range loop {
		lat, lng := p.Lat, p.Lng
		if geoJSONOrder {
			lat, lng = p.Lng, p.Lat
		}
		values = append(values,
			geo.DegsToRads(geo.ConstrainLat(lat)),
			geo.DegsToRads(geo.ConstrainLng(lng)))
	}

	ptr, err := g.Alloc(uint32(len(loop)) * SizeGeoCoord)
	if err != nil {
		return 0, err
	}
	if err := g.WriteF64Array(ptr, values); err != nil {
		g.Free(ptr)
		return 0, err
	}
	return ptr, nil
}

// writeLoopAt populates a loop record at hdr, allocating its coordinate
// array. Returns the array pointer so error paths can release it.
func (g *Gateway) writeLoopAt(hdr uint32, loop geo.Loop, geoJSONOrder bool) (uint32, error) {
	coords, err := g.writeCoordArray(loop, geoJSONOrder)
	if err != nil {
		return 0, err
	}
	if err := g.mem.WriteU32(hdr+OffGeofenceNumVerts, uint32(len(loop))); err != nil {
		g.Free(coords)
		return 0, err
	}
	if err := g.mem.WriteU32(hdr+OffGeofenceVerts, coords); err != nil {
		g.Free(coords)
		return 0, err
	}
	return coords, nil
}

// BuildLoop allocates a standalone loop record plus its coordinate array
// and returns the record's address. Tear down with DestroyLoop.
func (g *Gateway) BuildLoop(loop geo.Loop, geoJSONOrder bool) (uint32, error) {
	hdr, err := g.Alloc(SizeGeofence)
	if err != nil {
		return 0, err
	}
	if _, err := g.writeLoopAt(hdr, loop, geoJSONOrder); err != nil {
		g.Free(hdr)
		return 0, err
	}
	return hdr, nil
}

// DestroyLoop frees a loop record built by BuildLoop and its coordinate
// array. Calling it twice on the same address is undefined.
func (g *Gateway) DestroyLoop(hdr uint32) error {
	coords, err := g.mem.ReadU32(hdr + OffGeofenceVerts)
	if err != nil {
		return err
	}
	g.Free(coords)
	g.Free(hdr)
	return nil
}

// BuildPolygon allocates a polygon record: the outer loop embedded in
// place, hole loops in one contiguous array. Returns the record's address.
// Tear down with DestroyPolygon; on error nothing remains allocated.
func (g *Gateway) BuildPolygon(p geo.Polygon, geoJSONOrder bool) (uint32, error) {
	scope := NewAllocationList()
	defer scope.Release()

	hdr, err := g.Alloc(SizeGeoPolygon)
	if err != nil {
		return 0, err
	}
	scope.Add(hdr)

	outerCoords, err := g.writeLoopAt(hdr+OffGeoPolygonGeofence, p.Outer, geoJSONOrder)
	if err != nil {
		scope.Free(g)
		return 0, err
	}
	scope.Add(outerCoords)

	var holesPtr uint32
	if len(p.Holes) > 0 {
		holesPtr, err = g.AllocZeroed(uint32(len(p.Holes)), SizeGeofence)
		if err != nil {
			scope.Free(g)
			return 0, err
		}
		scope.Add(holesPtr)

		for i, hole := range p.Holes {
			holeCoords, err := g.writeLoopAt(holesPtr+uint32(i)*SizeGeofence, hole, geoJSONOrder)
			if err != nil {
				scope.Free(g)
				return 0, err
			}
			scope.Add(holeCoords)
		}
	}

	if err := g.mem.WriteU32(hdr+OffGeoPolygonNumHoles, uint32(len(p.Holes))); err != nil {
		scope.Free(g)
		return 0, err
	}
	if err := g.mem.WriteU32(hdr+OffGeoPolygonHoles, holesPtr); err != nil {
		scope.Free(g)
		return 0, err
	}

	return hdr, nil
}

// DestroyPolygon symmetrically tears down a polygon record built by
// BuildPolygon: the outer coordinate array, every hole's coordinate array,
// the holes array, then the record itself. Calling it twice on the same
// address, or touching the address afterward, is undefined.
func (g *Gateway) DestroyPolygon(hdr uint32) error {
	outerCoords, err := g.mem.ReadU32(hdr + OffGeoPolygonGeofence + OffGeofenceVerts)
	if err != nil {
		return err
	}

	numHoles, err := g.mem.ReadU32(hdr + OffGeoPolygonNumHoles)
	if err != nil {
		return err
	}
	holesPtr, err := g.mem.ReadU32(hdr + OffGeoPolygonHoles)
	if err != nil {
		return err
	}

	for i := uint32(0); i < numHoles; i++ {
		holeCoords, err := g.mem.ReadU32(holesPtr + i*SizeGeofence + OffGeofenceVerts)
		if err != nil {
			return err
		}
		g.Free(holeCoords)
	}

	g.Free(outerCoords)
	g.Free(holesPtr)
	g.Free(hdr)
	return nil
}
