// Package motion materialises, for every (frame, channel, pulse, sample)
// slot, the world-space pose of the radar body and of each mesh target,
// from piecewise-constant velocity/rotation-rate plus optional per-slot
// override grids.
package motion

import "fmt"

// Shape describes the dense time grid a Field's per-slot data is indexed
// against: frames·channels combined into one axis (matching the
// baseband grid's row axis), then pulses, then samples per pulse.
type Shape struct {
	FrameChannels int
	Pulses        int
	Samples       int
}

// Len returns the total number of slots described by s.
func (s Shape) Len() int { return s.FrameChannels * s.Pulses * s.Samples }

// Index flattens a (fc, p, s) slot coordinate into Grid's storage order,
// matching the baseband grid's row-major layout.
func (s Shape) Index(fc, p, samp int) int {
	return (fc*s.Pulses+p)*s.Samples + samp
}

// Field is either a single value held constant across every slot, or a
// dense per-slot grid. This is the tagged variant the data model calls
// for: every target/radar motion quantity can be supplied either way.
type Field[T any] struct {
	constant T
	grid     []T
	shape    Shape
	isGrid   bool
}

// Const wraps a single value constant across the whole run.
func Const[T any](v T) Field[T] {
	return Field[T]{constant: v}
}

// NewGrid wraps a dense per-slot grid. len(values) must equal
// shape.Len().
func NewGrid[T any](shape Shape, values []T) (Field[T], error) {
	if len(values) != shape.Len() {
		return Field[T]{}, fmt.Errorf("motion: grid length %d does not match shape %+v (want %d)", len(values), shape, shape.Len())
	}
	return Field[T]{grid: values, shape: shape, isGrid: true}, nil
}

// At returns the value for slot (fc, p, samp). For a constant field this
// ignores the slot coordinate entirely.
func (f Field[T]) At(fc, p, samp int) T {
	if !f.isGrid {
		return f.constant
	}
	return f.grid[f.shape.Index(fc, p, samp)]
}

// IsGrid reports whether f carries a per-slot override grid. When true,
// per spec.md's motion sampler rule, any companion rate field (velocity
// for location, rotation_rate for rotation) is ignored for this
// component.
func (f Field[T]) IsGrid() bool { return f.isGrid }
