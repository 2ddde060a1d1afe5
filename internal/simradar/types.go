package simradar

import (
	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/mesh"
	"github.com/banshee-data/radarsim/internal/simradar/motion"
	"github.com/banshee-data/radarsim/internal/simradar/physopt"
	"github.com/banshee-data/radarsim/internal/simradar/waveform"
)

// Radar bundles a radar platform's motion, its transmit/receive chain,
// and the per-pulse sample count the baseband grid is sized against — the
// one dimension spec.md's data model leaves to the caller rather than to
// the Transmitter/Receiver schedule itself.
type Radar struct {
	Body            motion.Body
	Transmitter     waveform.Transmitter
	Receiver        waveform.Receiver
	SamplesPerPulse int
}

// Target is a motion-sampled scattering mesh: a local pivot, a Body the
// motion sampler evaluates per slot, a uniform material, and the
// ground-suppression flag, per the Target (scattering) entry of the data
// model.
type Target struct {
	Mesh     *mesh.Mesh
	Origin   geom.Vec3
	Body     motion.Body
	Material physopt.Material
	IsGround bool
}
