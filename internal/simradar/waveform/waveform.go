package waveform

import (
	"fmt"
	"sort"
)

// Table is a piecewise-linear frequency-vs-time schedule: ordered time
// samples t[k] (seconds, relative to pulse start) and the instantaneous
// frequency f[k] (Hz) at each. FreqAt interpolates between samples and
// clamps outside the table's range.
type Table struct {
	t []float64
	f []float64
}

// NewTable validates and builds a Table from equal-length, strictly
// ascending t and matching f samples.
func NewTable(t, f []float64) (Table, error) {
	if len(t) != len(f) {
		return Table{}, fmt.Errorf("waveform: frequency table t/f length mismatch (%d vs %d)", len(t), len(f))
	}
	if len(t) == 0 {
		return Table{}, fmt.Errorf("waveform: frequency table has no samples")
	}
	for i := 1; i < len(t); i++ {
		if t[i] <= t[i-1] {
			return Table{}, fmt.Errorf("waveform: frequency table times must be strictly ascending")
		}
	}
	tt := make([]float64, len(t))
	ff := make([]float64, len(f))
	copy(tt, t)
	copy(ff, f)
	return Table{t: tt, f: ff}, nil
}

// FreqAt returns the instantaneous frequency at time x (seconds relative
// to pulse start), linearly interpolated and clamped to the table's
// endpoint values outside its domain.
func (w Table) FreqAt(x float64) float64 {
	n := len(w.t)
	if n == 0 {
		return 0
	}
	if x <= w.t[0] {
		return w.f[0]
	}
	if x >= w.t[n-1] {
		return w.f[n-1]
	}
	i := sort.SearchFloat64s(w.t, x)
	lo, hi := i-1, i
	span := w.t[hi] - w.t[lo]
	if span <= 0 {
		return w.f[lo]
	}
	frac := (x - w.t[lo]) / span
	return w.f[lo] + frac*(w.f[hi]-w.f[lo])
}

// ArbMod is the optional intra-pulse arbitrary-waveform modulation: a
// complex multiplier var[i] that applies while t[i] <= (t_sample -
// t_pulse_start) < t[i+1]. Disabled (Enabled == false) behaves as an
// identity multiplier of 1.
type ArbMod struct {
	Enabled bool
	T       []float64
	Var     []complex128
}

// At returns the modulation multiplier for time x (seconds since pulse
// start). x before T[0] or past T[len-1] holds the nearest endpoint's
// value, matching Table.FreqAt's clamping convention.
func (m ArbMod) At(x float64) complex128 {
	if !m.Enabled || len(m.T) == 0 {
		return 1
	}
	n := len(m.T)
	if x < m.T[0] {
		return m.Var[0]
	}
	// Find the rightmost interval whose start is <= x.
	i := sort.Search(n, func(i int) bool { return m.T[i] > x })
	if i == 0 {
		return m.Var[0]
	}
	idx := i - 1
	if idx >= len(m.Var) {
		idx = len(m.Var) - 1
	}
	return m.Var[idx]
}

// Validate checks T/Var are the same length and T ascending, when enabled.
func (m ArbMod) Validate() error {
	if !m.Enabled {
		return nil
	}
	if len(m.T) != len(m.Var) {
		return fmt.Errorf("waveform: arbitrary-waveform modulation t/var length mismatch (%d vs %d)", len(m.T), len(m.Var))
	}
	for i := 1; i < len(m.T); i++ {
		if m.T[i] <= m.T[i-1] {
			return fmt.Errorf("waveform: arbitrary-waveform modulation times must be strictly ascending")
		}
	}
	return nil
}
