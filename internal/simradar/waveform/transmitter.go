package waveform

import (
	"fmt"

	"github.com/banshee-data/radarsim/internal/simradar/motion"
)

// Transmitter is the ordered sequence of TxChannel plus the waveform
// schedule shared across every channel: transmit power, the
// frequency-vs-time table, per-pulse frequency offsets, pulse/frame start
// times, and an optional per-slot phase noise complex gain.
type Transmitter struct {
	Channels         []TxChannel
	TxPowerDBm       float64
	Freq             Table
	FreqOffsetPerPulse []float64
	PulseStartTime   []float64
	FrameStartTime   []float64
	// PhaseNoise is optional and consulted only when PhaseNoiseEnabled is
	// true; a zero-value Field then yields a gain of 0 (motion.Const's zero
	// value for complex128), not 1. With PhaseNoiseEnabled false,
	// PhaseNoiseAt returns 1 whatever this field holds.
	PhaseNoise        motion.Field[complex128]
	PhaseNoiseEnabled bool
}

// PhaseNoiseAt returns the phase noise complex gain for slot (fc, p,
// samp), or 1 (no-op) if phase noise is disabled.
func (tx Transmitter) PhaseNoiseAt(fc, p, samp int) complex128 {
	if !tx.PhaseNoiseEnabled {
		return 1
	}
	return tx.PhaseNoise.At(fc, p, samp)
}

// Validate checks the per-pulse schedule lengths agree and every channel's
// modulation table matches the pulse count.
func (tx Transmitter) Validate() error {
	pulses := len(tx.PulseStartTime)
	if len(tx.FreqOffsetPerPulse) != pulses {
		return fmt.Errorf("waveform: transmitter frequency-offset length %d does not match %d pulses", len(tx.FreqOffsetPerPulse), pulses)
	}
	if len(tx.Channels) == 0 {
		return fmt.Errorf("waveform: transmitter has no channels")
	}
	for i, ch := range tx.Channels {
		if err := ch.Validate(pulses); err != nil {
			return fmt.Errorf("waveform: tx channel %d: %w", i, err)
		}
	}
	return nil
}

// FreqAt returns the instantaneous carrier frequency for pulse p at time
// tSincePulseStart (seconds since that pulse began), combining the
// shared frequency table with the pulse's frequency offset.
func (tx Transmitter) FreqAt(p int, tSincePulseStart float64) (float64, error) {
	if p < 0 || p >= len(tx.FreqOffsetPerPulse) {
		return 0, fmt.Errorf("waveform: pulse index %d out of range", p)
	}
	return tx.Freq.FreqAt(tSincePulseStart) + tx.FreqOffsetPerPulse[p], nil
}
