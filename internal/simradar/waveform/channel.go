package waveform

import (
	"fmt"
	"math"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
)

// TxChannel is one transmit antenna feed: its body-relative location and
// polarisation, its azimuth/elevation patterns, a scalar boresight gain,
// pulse delay, ray-emission grid spacing, and the per-pulse and
// intra-pulse modulation overlays spec.md §3 assigns only to transmit
// channels.
type TxChannel struct {
	Location     geom.Vec3
	Polarization geom.Vec3C
	AzPattern    AntennaPattern
	ElPattern    AntennaPattern
	GainDBi      float64
	PulseDelay   float64 // seconds; feed-specific offset added to this channel's propagation delay
	GridSpacing  float64 // radians; sets ray-emission solid-angle granularity
	PulseMod     []complex128
	ArbMod       ArbMod
}

// RxChannel is one receive antenna feed: same spatial/polarisation/pattern
// fields as TxChannel, minus modulation.
type RxChannel struct {
	Location     geom.Vec3
	Polarization geom.Vec3C
	AzPattern    AntennaPattern
	ElPattern    AntennaPattern
	GainDBi      float64
}

// Gain returns the channel's total linear-unit gain toward (azimuth,
// elevation), the product of the azimuth pattern, the elevation pattern,
// and the scalar boresight gain converted from dBi. This is the
// separable approximation spec.md §3 describes as "bilinear lookup."
func (c TxChannel) Gain(azimuth, elevation float64) float64 {
	return c.AzPattern.Gain(azimuth) * c.ElPattern.Gain(elevation) * math.Pow(10, c.GainDBi/10)
}

// Gain is RxChannel's analogue of TxChannel.Gain.
func (c RxChannel) Gain(azimuth, elevation float64) float64 {
	return c.AzPattern.Gain(azimuth) * c.ElPattern.Gain(elevation) * math.Pow(10, c.GainDBi/10)
}

// ModulationAt collapses this channel's per-pulse complex modulation and
// intra-pulse arbitrary-waveform modulation into the single complex gain
// spec.md §9's "complex waveform modulation overlays" redesign calls for:
// one multiply in the hot loop rather than branchy per-overlay dispatch.
// pulseIdx selects PulseMod; tSincePulseStart is seconds since the pulse
// began, consulted only if ArbMod is enabled.
func (c TxChannel) ModulationAt(pulseIdx int, tSincePulseStart float64) (complex128, error) {
	if pulseIdx < 0 || pulseIdx >= len(c.PulseMod) {
		return 0, fmt.Errorf("waveform: pulse index %d out of range for %d-pulse modulation table", pulseIdx, len(c.PulseMod))
	}
	return c.PulseMod[pulseIdx] * c.ArbMod.At(tSincePulseStart), nil
}

// Validate checks a TxChannel's internal consistency: pulse modulation
// length against the caller-supplied pulse count, and the arbitrary
// waveform modulation table if enabled.
func (c TxChannel) Validate(pulses int) error {
	if len(c.PulseMod) != pulses {
		return fmt.Errorf("waveform: tx channel pulse modulation length %d does not match %d pulses", len(c.PulseMod), pulses)
	}
	return c.ArbMod.Validate()
}
