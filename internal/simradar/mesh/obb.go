package mesh

import (
	"math"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"gonum.org/v1/gonum/mat"
)

// OBB is an oriented bounding box over a mesh's local-frame vertices: a
// centroid, three unit axes ordered by descending variance, and the
// half-extent of the vertex cloud along each axis.
type OBB struct {
	Center     geom.Vec3
	Axes       [3]geom.Vec3
	HalfExtent [3]geom.Real
}

// ComputeOBB fits m's vertices with PCA: the 3x3 covariance matrix's
// eigenvectors set the box orientation (largest-variance axis first) and
// every vertex is then projected onto each axis to find the tight extent
// along it. This generalizes l4perception.EstimateOBBFromCluster's 2x2
// closed-form covariance solve to three dimensions, routed through
// gonum/mat's symmetric eigensolver rather than a hand-derived formula.
func (m *Mesh) ComputeOBB() OBB {
	n := len(m.Points)
	if n == 0 {
		return OBB{}
	}

	var cx, cy, cz float64
	for _, p := range m.Points {
		cx += float64(p.X)
		cy += float64(p.Y)
		cz += float64(p.Z)
	}
	nf := float64(n)
	cx /= nf
	cy /= nf
	cz /= nf
	center := geom.Vec3{X: geom.Real(cx), Y: geom.Real(cy), Z: geom.Real(cz)}

	var c00, c01, c02, c11, c12, c22 float64
	for _, p := range m.Points {
		dx := float64(p.X) - cx
		dy := float64(p.Y) - cy
		dz := float64(p.Z) - cz
		c00 += dx * dx
		c01 += dx * dy
		c02 += dx * dz
		c11 += dy * dy
		c12 += dy * dz
		c22 += dz * dz
	}
	cov := mat.NewSymDense(3, []float64{
		c00 / nf, c01 / nf, c02 / nf,
		c01 / nf, c11 / nf, c12 / nf,
		c02 / nf, c12 / nf, c22 / nf,
	})

	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return axisAlignedOBB(m.Points, center)
	}

	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// gonum orders eigenvalues ascending; axis 0 should carry the
	// largest variance (the cluster's principal direction).
	columns := [3]int{2, 1, 0}
	var axes [3]geom.Vec3
	for outIdx, col := range columns {
		axes[outIdx] = geom.Vec3{
			X: geom.Real(vectors.At(0, col)),
			Y: geom.Real(vectors.At(1, col)),
			Z: geom.Real(vectors.At(2, col)),
		}
	}

	var half [3]geom.Real
	for _, p := range m.Points {
		rel := p.Sub(center)
		for a := 0; a < 3; a++ {
			proj := rel.Dot(axes[a])
			if proj < 0 {
				proj = -proj
			}
			if proj > half[a] {
				half[a] = proj
			}
		}
	}
	return OBB{Center: center, Axes: axes, HalfExtent: half}
}

// axisAlignedOBB is the fallback used when Factorize reports failure: the
// box falls back to the world axes. Coincident or collinear vertices
// still factorize and take the eigenvector path above.
func axisAlignedOBB(points []geom.Vec3, center geom.Vec3) OBB {
	axes := [3]geom.Vec3{{X: 1}, {Y: 1}, {Z: 1}}
	var half [3]geom.Real
	for _, p := range points {
		rel := p.Sub(center)
		if d := absReal(rel.X); d > half[0] {
			half[0] = d
		}
		if d := absReal(rel.Y); d > half[1] {
			half[1] = d
		}
		if d := absReal(rel.Z); d > half[2] {
			half[2] = d
		}
	}
	return OBB{Center: center, Axes: axes, HalfExtent: half}
}

func absReal(v geom.Real) geom.Real {
	if v < 0 {
		return -v
	}
	return v
}

// Diagonal returns the OBB's full diagonal length.
func (o OBB) Diagonal() geom.Real {
	dx, dy, dz := 2*o.HalfExtent[0], 2*o.HalfExtent[1], 2*o.HalfExtent[2]
	return geom.Real(math.Sqrt(float64(dx)*float64(dx) + float64(dy)*float64(dy) + float64(dz)*float64(dz)))
}
