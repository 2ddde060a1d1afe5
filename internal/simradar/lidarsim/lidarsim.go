// Package lidarsim produces a LiDAR point cloud by first-hit ray/mesh
// intersection, reusing the same BVH and ray/mesh machinery the radar
// simulator uses for SBR, per spec.md §6 operation 3: sim_lidar.
package lidarsim

import (
	"fmt"
	"math"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/raytrace"
)

// Sensor is a LiDAR emitter: a fixed world-space position and parallel
// azimuth/elevation angle arrays describing each beam's direction
// (right-handed, azimuth from +x toward +y, elevation from the x-y plane
// toward +z, matching the engine's coordinate convention).
type Sensor struct {
	Position geom.Vec3
	Phi      []float64
	Theta    []float64
}

// Ray is one emitted beam's result: its origin and direction as emitted,
// and whether/where it struck the scene.
type Ray struct {
	Origin    geom.Vec3
	Direction geom.Vec3
	Hit       bool
	HitPoint  geom.Vec3
}

// Trace emits one ray per (Phi[i], Theta[i]) pair from sensor.Position
// and returns its first-hit result against bvhs, per spec.md §6 op 3.
// tMax bounds the search distance (e.g. the scene's bounding diagonal).
func Trace(sensor Sensor, bvhs []raytrace.BVHEntry, tMax geom.Real) ([]Ray, error) {
	if len(sensor.Phi) != len(sensor.Theta) {
		return nil, fmt.Errorf("lidarsim: phi/theta length mismatch (%d vs %d)", len(sensor.Phi), len(sensor.Theta))
	}

	rays := make([]Ray, len(sensor.Phi))
	for i := range sensor.Phi {
		phi, theta := sensor.Phi[i], sensor.Theta[i]
		dir := geom.Vec3{
			X: geom.Real(math.Cos(theta) * math.Cos(phi)),
			Y: geom.Real(math.Cos(theta) * math.Sin(phi)),
			Z: geom.Real(math.Sin(theta)),
		}

		r := Ray{Origin: sensor.Position, Direction: dir}
		hit, _, ok := raytrace.FirstHit(bvhs, sensor.Position, dir, tMax)
		if ok {
			r.Hit = true
			r.HitPoint = hit.Point
		}
		rays[i] = r
	}
	return rays, nil
}
