package baseband

import "github.com/banshee-data/radarsim/internal/simradar/waveform"

// Integrator owns the baseband, noise, and interference grids for one
// run and accumulates ray/point contributions into them at the correct
// delay bin, per spec.md §4.7.
type Integrator struct {
	Shape        Shape
	Baseband     *Grid
	Noise        *Grid
	Interference *Grid
	Receiver     waveform.Receiver
}

// NewIntegrator allocates the three grids for shape and wires in the
// receiver whose baseband type governs real-vs-complex output.
func NewIntegrator(shape Shape, receiver waveform.Receiver) *Integrator {
	return &Integrator{
		Shape:        shape,
		Baseband:     NewGrid(shape),
		Noise:        NewGrid(shape),
		Interference: NewGrid(shape),
		Receiver:     receiver,
	}
}

// Add implements pointsim.Accumulator: it resolves (frame, txIdx, rxIdx)
// into the grid's row layout and accumulates v, collapsed to its real
// part first if the receiver's baseband output is real-valued.
func (it *Integrator) Add(frame, txIdx, rxIdx, pulse, sample int, v complex128) {
	row := it.Shape.Row(frame, txIdx, rxIdx)
	it.Baseband.Add(row, pulse, sample, it.Receiver.ApplyOutputType(v))
}

// AddInterference writes into the dedicated interference buffer, per
// spec.md §4.9.
func (it *Integrator) AddInterference(frame, txIdx, rxIdx, pulse, sample int, v complex128) {
	row := it.Shape.Row(frame, txIdx, rxIdx)
	it.Interference.Add(row, pulse, sample, it.Receiver.ApplyOutputType(v))
}

// WriteFrameNoise fills every channel/pulse/sample cell for frame fr from
// a pre-drawn set of per-channel noise vectors (see FrameNoise),
// slicing the slot-aligned window for each pulse so noise stays
// temporally correlated within a pulse, per spec.md §4.8. numTx is the
// transmitter's channel count; vectors is indexed by the flattened
// (tx,rx) channel index within the frame.
func (it *Integrator) WriteFrameNoise(fr, numTx int, vectors [][]complex128, tsMin, fs float64, pulseStart []float64) {
	numRx := it.Shape.NumRx
	n := 0
	if len(vectors) > 0 {
		n = len(vectors[0])
	}
	for tx := 0; tx < numTx; tx++ {
		for rx := 0; rx < numRx; rx++ {
			chIdx := tx*numRx + rx
			row := it.Shape.Row(fr, tx, rx)
			vec := vectors[chIdx]
			for p := 0; p < it.Shape.Pulses; p++ {
				for s := 0; s < it.Shape.Samples; s++ {
					tSample := pulseStart[p] + float64(s)/fs
					idx := WindowIndex(tSample, tsMin, fs, n)
					it.Noise.Set(row, p, s, it.Receiver.ApplyOutputType(vec[idx]))
				}
			}
		}
	}
}
