package runtime

import (
	"github.com/geowire/h3-bridge/errors"
)

// AreaUnit selects the unit for average-area queries.
type AreaUnit string

// LengthUnit selects the unit for average-edge-length queries.
type LengthUnit string

const (
	AreaKm2 AreaUnit = "km2"
	AreaM2  AreaUnit = "m2"

	LengthKm LengthUnit = "km"
	LengthM  LengthUnit = "m"
)

// HexArea returns the average hexagon area at a resolution. The unit enum
// is closed: anything but km2 or m2 is rejected.
func (r *Runtime) HexArea(res int, unit AreaUnit) (float64, error) {
	if err := validResolution("hexArea", res); err != nil {
		return 0, err
	}

	var export string
	switch unit {
	case AreaKm2:
		export = "hexAreaKm2"
	case AreaM2:
		export = "hexAreaM2"
	default:
		return 0, errors.InvalidEnum("hexArea", unit, "area unit")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.callF64(export, uint64(uint32(res)))
}

// EdgeLength returns the average hexagon edge length at a resolution. The
// unit enum is closed: anything but km or m is rejected.
func (r *Runtime) EdgeLength(res int, unit LengthUnit) (float64, error) {
	if err := validResolution("edgeLength", res); err != nil {
		return 0, err
	}

	var export string
	switch unit {
	case LengthKm:
		export = "edgeLengthKm"
	case LengthM:
		export = "edgeLengthM"
	default:
		return 0, errors.InvalidEnum("edgeLength", unit, "length unit")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.callF64(export, uint64(uint32(res)))
}

// NumHexagons returns the total number of cells at a resolution. The
// count exceeds 32 bits from resolution 7, so the full 64-bit value is
// reassembled from both result words.
func (r *Runtime) NumHexagons(res int) (int64, error) {
	if err := validResolution("numHexagons", res); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	lo, hi, err := r.call64("numHexagons", uint64(uint32(res)))
	if err != nil {
		return 0, err
	}
	return int64(hi)<<32 | int64(lo), nil
}
