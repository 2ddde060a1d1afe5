package simradar

import (
	"fmt"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/lidarsim"
	"github.com/banshee-data/radarsim/internal/simradar/mesh"
	"github.com/banshee-data/radarsim/internal/simradar/motion"
	"github.com/banshee-data/radarsim/internal/simradar/raytrace"
	"github.com/banshee-data/radarsim/internal/simradar/simerr"
)

// SimLidarInput is sim_lidar's full argument list, per spec.md §6
// operation 3: a fixed sensor position with parallel azimuth/elevation
// beam arrays, a motion-sampled target scene, and the single instant the
// scene is placed at.
type SimLidarInput struct {
	Sensor    lidarsim.Sensor
	Targets   []Target
	FrameTime float64
	T0        float64
}

// SimLidar places every target mesh at FrameTime, builds a BVH for each,
// and emits one first-hit ray per (Phi[i], Theta[i]) beam — sim_lidar
// reuses the same motion-sampled placement rule sim_radar's snapshots use,
// but needs only a single instant since LiDAR has no pulse/sample grid.
func (e *Engine) SimLidar(in SimLidarInput) ([]lidarsim.Ray, error) {
	const op = "sim_lidar"
	if len(in.Sensor.Phi) != len(in.Sensor.Theta) {
		return nil, simerr.Newf(op, simerr.InvalidInput,
			"phi/theta length mismatch (%d vs %d)", len(in.Sensor.Phi), len(in.Sensor.Theta))
	}
	for i, tgt := range in.Targets {
		if tgt.Mesh == nil {
			return nil, simerr.New(op, simerr.InvalidInput, fmt.Errorf("target %d has no mesh", i))
		}
	}

	box := geom.EmptyAABB().ExpandPoint(in.Sensor.Position)
	bvhs := make([]raytrace.BVHEntry, len(in.Targets))
	for i, tgt := range in.Targets {
		sampler := motion.Sampler{Body: tgt.Body, T0: in.T0}
		pose := sampler.Pose(0, 0, 0, in.FrameTime)
		rot := pose.Rotation.RotationMatrix()
		verts := tgt.Mesh.WorldVertices(tgt.Origin, rot, pose.Location)
		for _, v := range verts {
			box = box.ExpandPoint(v)
		}
		bvhs[i] = raytrace.BVHEntry{Target: i, BVH: mesh.Build(tgt.Mesh, verts)}
	}

	tMax := box.Diagonal() * 2
	if tMax <= 0 {
		tMax = 1
	}

	rays, err := lidarsim.Trace(in.Sensor, bvhs, tMax)
	if err != nil {
		return nil, simerr.New(op, simerr.InvalidInput, err)
	}
	return rays, nil
}
