package geom

import "math"

// Euler holds a yaw-pitch-roll rotation in radians, composed Z-Y-X
// extrinsic: yaw about Z, then pitch about Y, then roll about X, per the
// motion sampler's rotation composition rule.
type Euler struct {
	Yaw, Pitch, Roll Real
}

// Mat3 is a row-major 3x3 matrix.
type Mat3 [9]Real

// RotationMatrix builds the Z-Y-X extrinsic rotation matrix for e.
func (e Euler) RotationMatrix() Mat3 {
	sy, cy := math.Sincos(float64(e.Yaw))
	sp, cp := math.Sincos(float64(e.Pitch))
	sr, cr := math.Sincos(float64(e.Roll))

	// R = Rz(yaw) * Ry(pitch) * Rx(roll)
	return Mat3{
		Real(cy * cp), Real(cy*sp*sr - sy*cr), Real(cy*sp*cr + sy*sr),
		Real(sy * cp), Real(sy*sp*sr + cy*cr), Real(sy*sp*cr - cy*sr),
		Real(-sp), Real(cp * sr), Real(cp * cr),
	}
}

// Apply rotates v by m.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// PlaceVertex reproduces the mesh vertex placement rule: subtract the
// local pivot, rotate into world orientation, then translate to the
// body's world location.
func PlaceVertex(local, origin Vec3, rot Mat3, location Vec3) Vec3 {
	return rot.Apply(local.Sub(origin)).Add(location)
}

// Transpose returns m's transpose. Since RotationMatrix always produces
// an orthonormal matrix, this is also its inverse — used to take a
// world-frame direction back into a body's local frame for antenna
// pattern lookup.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}
