// Package baseband owns the dense I/Q baseband, noise, and interference
// grids, the channel-row layout they share, and Gaussian noise synthesis.
package baseband

import "fmt"

// Shape describes one baseband-family grid's dimensions: frames combined
// with the full tx*rx channel count into one row axis, then pulses, then
// samples per pulse, matching spec.md §3's
// `[frames·channels_total, pulses, samples_per_pulse]` layout.
type Shape struct {
	Frames        int
	ChannelsTotal int // |TxChannels| * |RxChannels|
	NumRx         int // |RxChannels|, needed to compute a row from (frame, tx, rx)
	Pulses        int
	Samples       int
}

// Rows returns the grid's first-axis length, frames*channels_total.
func (s Shape) Rows() int { return s.Frames * s.ChannelsTotal }

// Row computes the row index for (frame, txIdx, rxIdx), matching the
// data model's strict (frame, tx, rx) ordering with rx varying fastest.
func (s Shape) Row(frame, txIdx, rxIdx int) int {
	return frame*s.ChannelsTotal + txIdx*s.NumRx + rxIdx
}

// Index flattens (row, pulse, sample) into the grid's row-major storage
// offset.
func (s Shape) Index(row, pulse, sample int) int {
	return (row*s.Pulses+pulse)*s.Samples + sample
}

// Len returns the total element count, Rows()*Pulses*Samples.
func (s Shape) Len() int { return s.Rows() * s.Pulses * s.Samples }

// Grid is a dense complex baseband buffer stored as separate real/imag
// double arrays, per the data model's "two dense double arrays."
type Grid struct {
	Shape Shape
	Real  []float64
	Imag  []float64
}

// NewGrid allocates a zeroed Grid of the given shape.
func NewGrid(shape Shape) *Grid {
	n := shape.Len()
	return &Grid{Shape: shape, Real: make([]float64, n), Imag: make([]float64, n)}
}

// Add accumulates v into cell (row, pulse, sample) — the baseband is an
// additive reduction, per the concurrency model.
func (g *Grid) Add(row, pulse, sample int, v complex128) {
	i := g.Shape.Index(row, pulse, sample)
	g.Real[i] += real(v)
	g.Imag[i] += imag(v)
}

// Set overwrites cell (row, pulse, sample), used for writing the noise
// grid (which is assigned once per frame, not accumulated).
func (g *Grid) Set(row, pulse, sample int, v complex128) {
	i := g.Shape.Index(row, pulse, sample)
	g.Real[i] = real(v)
	g.Imag[i] = imag(v)
}

// At returns cell (row, pulse, sample) as a complex value.
func (g *Grid) At(row, pulse, sample int) complex128 {
	i := g.Shape.Index(row, pulse, sample)
	return complex(g.Real[i], g.Imag[i])
}

// Validate checks g's backing arrays actually match its declared shape,
// guarding against a Grid built by hand rather than via NewGrid.
func (g *Grid) Validate() error {
	n := g.Shape.Len()
	if len(g.Real) != n || len(g.Imag) != n {
		return fmt.Errorf("baseband: grid backing array length (%d, %d) does not match shape length %d", len(g.Real), len(g.Imag), n)
	}
	return nil
}
