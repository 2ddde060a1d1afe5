package geom

// Hit carries the result of a successful ray-triangle intersection:
// distance along the ray, and the barycentric coordinates of the hit
// point (u, v; w = 1-u-v).
type Hit struct {
	T, U, V Real
}

// IntersectTriangle implements the Möller–Trumbore ray-triangle
// intersection test. eps is the scene-extent-relative tolerance
// (t > eps) and also gates the parallel-ray rejection (|det| < eps
// returns a miss), per the BVH's numerical edge policy.
func IntersectTriangle(origin, dir, v0, v1, v2 Vec3, eps Real) (Hit, bool) {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	pvec := dir.Cross(edge2)
	det := edge1.Dot(pvec)

	if det > -eps && det < eps {
		return Hit{}, false // parallel ray
	}
	invDet := 1 / det

	tvec := origin.Sub(v0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return Hit{}, false
	}

	qvec := tvec.Cross(edge1)
	v := dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return Hit{}, false
	}

	t := edge2.Dot(qvec) * invDet
	if t <= eps {
		return Hit{}, false
	}

	return Hit{T: t, U: u, V: v}, true
}

// Barycentric interpolates a per-vertex quantity using a Hit's (u, v).
func Barycentric(hit Hit, a, b, c Vec3) Vec3 {
	w := 1 - hit.U - hit.V
	return a.Scale(w).Add(b.Scale(hit.U)).Add(c.Scale(hit.V))
}
