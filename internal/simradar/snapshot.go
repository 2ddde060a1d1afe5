package simradar

import (
	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/mesh"
	"github.com/banshee-data/radarsim/internal/simradar/motion"
	"github.com/banshee-data/radarsim/internal/simradar/raytrace"
	"github.com/banshee-data/radarsim/internal/simradar/simconfig"
	"github.com/banshee-data/radarsim/internal/simradar/waveform"
)

// snapshot is one motion-sampled instant the mesh geometry was placed and
// BVH-built at: the representative (pulse, sample) slot it was taken for,
// its absolute timestamp, the resulting per-target BVHs, and a ray search
// ceiling sized to the snapshot's own scene extent.
type snapshot struct {
	id         uint64
	p, s       int
	timestamp  float64
	bvhs       []raytrace.BVHEntry
	tMax       geom.Real
	meshExtent geom.Real // largest target OBB diagonal at this snapshot, for ray-density sizing
}

// buildSnapshots materialises every geometry snapshot frame fr needs at
// fidelity's cadence: one for the whole frame, one per pulse, or one per
// sample. Snapshots are built once, up front, and only ever read by the
// worker pool afterward — mirroring the frame noise buffer's
// materialize-before-the-parallel-section rule in spec.md §5.
func buildSnapshots(targets []Target, tx waveform.Transmitter, fs float64, radarBody motion.Body, t0 float64, fr, samples int, fidelity simconfig.Fidelity) []snapshot {
	pulses := len(tx.PulseStartTime)

	var keys [][2]int
	switch fidelity {
	case simconfig.FidelityFrame:
		keys = [][2]int{{0, 0}}
	case simconfig.FidelityPulse:
		keys = make([][2]int, pulses)
		for p := 0; p < pulses; p++ {
			keys[p] = [2]int{p, 0}
		}
	default: // simconfig.FidelitySample
		keys = make([][2]int, 0, pulses*samples)
		for p := 0; p < pulses; p++ {
			for s := 0; s < samples; s++ {
				keys = append(keys, [2]int{p, s})
			}
		}
	}

	radarSampler := motion.Sampler{Body: radarBody, T0: t0}
	snaps := make([]snapshot, len(keys))
	for i, k := range keys {
		p, s := k[0], k[1]
		ts := slotTime(tx, fs, fr, p, s)

		box := geom.EmptyAABB().ExpandPoint(radarSampler.Pose(fr, p, s, ts).Location)
		bvhs := make([]raytrace.BVHEntry, len(targets))
		var meshExtent geom.Real
		for ti, tgt := range targets {
			sampler := motion.Sampler{Body: tgt.Body, T0: t0}
			pose := sampler.Pose(fr, p, s, ts)
			rot := pose.Rotation.RotationMatrix()
			verts := tgt.Mesh.WorldVertices(tgt.Origin, rot, pose.Location)
			for _, v := range verts {
				box = box.ExpandPoint(v)
			}
			bvhs[ti] = raytrace.BVHEntry{Target: ti, BVH: mesh.Build(tgt.Mesh, verts)}

			// OBB diagonal is rotation-invariant, so the mesh's own local
			// frame already gives the world-space extent.
			if d := tgt.Mesh.ComputeOBB().Diagonal(); d > meshExtent {
				meshExtent = d
			}
		}

		tMax := box.Diagonal() * 2
		if tMax <= 0 {
			tMax = 1
		}

		snaps[i] = snapshot{
			id:         uint64(fr)*1_000_000 + uint64(p)*1_000 + uint64(s),
			p:          p,
			s:          s,
			timestamp:  ts,
			bvhs:       bvhs,
			tMax:       tMax,
			meshExtent: meshExtent,
		}
	}
	return snaps
}

// slotTime returns the absolute timestamp of sample s within pulse p of
// frame fr, given the transmitter's frame/pulse schedule and the
// receiver's sample rate fs.
func slotTime(tx waveform.Transmitter, fs float64, fr, p, s int) float64 {
	return tx.FrameStartTime[fr] + tx.PulseStartTime[p] + float64(s)/fs
}

// snapshotFor looks up the snapshot covering slot (p, s) at fidelity,
// matching the key ordering buildSnapshots produced.
func snapshotFor(snaps []snapshot, fidelity simconfig.Fidelity, samples, p, s int) snapshot {
	switch fidelity {
	case simconfig.FidelityFrame:
		return snaps[0]
	case simconfig.FidelityPulse:
		return snaps[p]
	default:
		return snaps[p*samples+s]
	}
}
