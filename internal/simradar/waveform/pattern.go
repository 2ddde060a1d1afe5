// Package waveform holds the Tx/Rx channel, transmitter, and receiver
// model: antenna patterns, waveform frequency schedules, per-pulse and
// intra-pulse modulation overlays, and the receiver noise/gain chain.
package waveform

import (
	"fmt"
	"math"
	"sort"
)

// AntennaPattern is a 1-D gain table over angle, stored as two parallel
// ordered sequences and looked up by binary search + linear
// interpolation, pre-normalised so the peak gain is 1 (linear units).
// TxChannel/RxChannel hold one of these for azimuth and one for
// elevation; the combined pattern gain is their product (a separable
// approximation to a full 2-D pattern, per the data model).
type AntennaPattern struct {
	angles []float64 // radians, strictly ascending
	gains  []float64 // linear units, peak-normalised to 1
}

// NewAntennaPattern builds a pattern from angle (radians) and gain (dBi)
// arrays of equal length, ascending by angle. Gains are converted to
// linear units and divided by the peak so the pattern's maximum is
// exactly 1.
func NewAntennaPattern(anglesRad, gainsDBi []float64) (AntennaPattern, error) {
	if len(anglesRad) != len(gainsDBi) {
		return AntennaPattern{}, fmt.Errorf("waveform: antenna pattern angle/gain length mismatch (%d vs %d)", len(anglesRad), len(gainsDBi))
	}
	if len(anglesRad) == 0 {
		return AntennaPattern{}, fmt.Errorf("waveform: antenna pattern has no samples")
	}
	for i := 1; i < len(anglesRad); i++ {
		if anglesRad[i] <= anglesRad[i-1] {
			return AntennaPattern{}, fmt.Errorf("waveform: antenna pattern angles must be strictly ascending")
		}
	}

	linear := make([]float64, len(gainsDBi))
	peak := math.Inf(-1)
	for i, g := range gainsDBi {
		linear[i] = math.Pow(10, g/10)
		if linear[i] > peak {
			peak = linear[i]
		}
	}
	if peak <= 0 {
		return AntennaPattern{}, fmt.Errorf("waveform: antenna pattern is all-zero")
	}
	for i := range linear {
		linear[i] /= peak
	}

	angles := make([]float64, len(anglesRad))
	copy(angles, anglesRad)

	return AntennaPattern{angles: angles, gains: linear}, nil
}

// Gain returns the linear-unit gain at angle (radians), clamping to the
// endpoint value outside the table's range.
func (p AntennaPattern) Gain(angle float64) float64 {
	n := len(p.angles)
	if n == 0 {
		return 0
	}
	if angle <= p.angles[0] {
		return p.gains[0]
	}
	if angle >= p.angles[n-1] {
		return p.gains[n-1]
	}
	i := sort.SearchFloat64s(p.angles, angle)
	// SearchFloat64s returns the first index with angles[i] >= angle.
	lo, hi := i-1, i
	span := p.angles[hi] - p.angles[lo]
	if span <= 0 {
		return p.gains[lo]
	}
	frac := (angle - p.angles[lo]) / span
	return p.gains[lo] + frac*(p.gains[hi]-p.gains[lo])
}

// PeakGainDBi returns the pattern's normalised peak, always 0 dBi since
// Gain is pre-normalised to 1 — exposed so callers can sanity-check a
// pattern was built with NewAntennaPattern rather than hand-assembled.
func (p AntennaPattern) PeakGainDBi() float64 { return 0 }

// Bounds returns the pattern's minimum and maximum tabulated angle
// (radians), the extent the ray tracer tessellates an antenna's solid
// angle over.
func (p AntennaPattern) Bounds() (min, max float64) {
	if len(p.angles) == 0 {
		return 0, 0
	}
	return p.angles[0], p.angles[len(p.angles)-1]
}
