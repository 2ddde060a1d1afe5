// Package mesh holds the triangulated scattering surface (points +
// triangle indices) and the bounding-volume hierarchy built over it.
package mesh

import (
	"fmt"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
)

// Cell is a triangle, stored as three indices into a Mesh's Points.
type Cell [3]int

// Mesh is an immutable triangulated surface. Points and Cells are set
// once at construction via NewMesh and never mutated afterward — the
// simulator only ever reads a Mesh concurrently.
type Mesh struct {
	Points []geom.Vec3
	Cells  []Cell

	// normals[i] and areas[i] are precomputed once for Cells[i] in the
	// mesh's own local frame; per-slot world normals are recomputed by
	// the caller from the rotated vertices (a Mesh carries no pose).
	normals []geom.Vec3
	areas   []geom.Real
}

// NewMesh validates and constructs a Mesh. Every cell index must be less
// than len(points); degenerate (zero-area) triangles are tolerated (they
// simply contribute nothing to scattering) rather than rejected, per the
// mesh invariants.
func NewMesh(points []geom.Vec3, cells []Cell) (*Mesh, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("mesh: no points")
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("mesh: no cells")
	}
	for i, c := range cells {
		for _, idx := range c {
			if idx < 0 || idx >= len(points) {
				return nil, fmt.Errorf("mesh: cell %d references out-of-range point index %d (have %d points)", i, idx, len(points))
			}
		}
	}

	m := &Mesh{Points: points, Cells: cells}
	m.normals = make([]geom.Vec3, len(cells))
	m.areas = make([]geom.Real, len(cells))
	for i, c := range cells {
		a, b, cc := points[c[0]], points[c[1]], points[c[2]]
		cross := b.Sub(a).Cross(cc.Sub(a))
		l := cross.Len()
		m.areas[i] = l / 2
		if l > 0 {
			m.normals[i] = cross.Scale(1 / l)
		}
	}
	return m, nil
}

// FaceNormal returns the precomputed local-frame unit normal of cell i.
func (m *Mesh) FaceNormal(i int) geom.Vec3 { return m.normals[i] }

// FaceArea returns the precomputed area of cell i (0 for a degenerate
// triangle).
func (m *Mesh) FaceArea(i int) geom.Real { return m.areas[i] }

// NumFaces returns the number of triangles in the mesh. Used by the
// free-tier advisory (meshes with more than 8 faces fail when the
// free-tier flag is set).
func (m *Mesh) NumFaces() int { return len(m.Cells) }

// WorldVertices places every vertex of the mesh at a motion slot: local
// point minus pivot, rotated, then translated to location, per the
// motion sampler's vertex placement rule.
func (m *Mesh) WorldVertices(origin geom.Vec3, rot geom.Mat3, location geom.Vec3) []geom.Vec3 {
	out := make([]geom.Vec3, len(m.Points))
	for i, p := range m.Points {
		out[i] = geom.PlaceVertex(p, origin, rot, location)
	}
	return out
}
