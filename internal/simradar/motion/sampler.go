package motion

import "github.com/banshee-data/radarsim/internal/simradar/geom"

// Pose is a body's world-space location and orientation at one slot.
type Pose struct {
	Location geom.Vec3
	Rotation geom.Euler
}

// Body holds one moving object's (location, velocity, rotation,
// rotation_rate) fields, each either a constant or a per-slot grid, per
// the Target/Radar data model.
type Body struct {
	Location     Field[geom.Vec3]
	Velocity     Field[geom.Vec3]
	Rotation     Field[geom.Euler]
	RotationRate Field[geom.Euler]
}

// Sampler evaluates a Body's pose at every slot of a time grid. t0 is the
// reference timestamp (H precision, seconds) that Location/Rotation
// constants and grids are defined relative to: when a component is not
// supplied as a grid, the pose is location + (t-t0)*velocity and
// rotation + (t-t0)*rotation_rate (radians).
type Sampler struct {
	Body Body
	T0   float64
}

// Pose computes the slot's world pose. timestamp is the H-precision
// (float64) absolute time for slot (fc, p, samp); it is only consulted
// for components supplied as constants — a grid-valued component is used
// verbatim and its companion rate field is ignored, per spec.md §4.1.
func (s Sampler) Pose(fc, p, samp int, timestamp float64) Pose {
	dt := geom.Real(timestamp - s.T0)

	loc := s.Body.Location.At(fc, p, samp)
	if !s.Body.Location.IsGrid() {
		v := s.Body.Velocity.At(fc, p, samp)
		loc = loc.Add(v.Scale(dt))
	}

	rot := s.Body.Rotation.At(fc, p, samp)
	if !s.Body.Rotation.IsGrid() {
		rr := s.Body.RotationRate.At(fc, p, samp)
		rot = geom.Euler{
			Yaw:   rot.Yaw + rr.Yaw*dt,
			Pitch: rot.Pitch + rr.Pitch*dt,
			Roll:  rot.Roll + rr.Roll*dt,
		}
	}

	return Pose{Location: loc, Rotation: rot}
}
