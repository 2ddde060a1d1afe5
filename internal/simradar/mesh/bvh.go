package mesh

import (
	"sort"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
)

// bvhLeafSize is the maximum number of triangles held directly by a leaf
// node before the builder splits further.
const bvhLeafSize = 4

// bvhNode is one node of the tree, stored in a flat slice. Leaf nodes
// carry a slice of triangle indices (into the owning BVH's Mesh.Cells,
// via the BVH's own index permutation); interior nodes carry child
// offsets into the same slice.
type bvhNode struct {
	bounds      geom.AABB
	left, right int // child indices into BVH.nodes; -1 for a leaf
	start, end  int // [start,end) into BVH.triIdx, valid only for leaves
}

// BVH is a binary bounding-volume hierarchy over one Mesh's triangles at
// a single motion snapshot (the world-space vertex positions it was
// built from). It is rebuilt once per snapshot since the mesh's pose,
// not just its topology, determines triangle placement.
type BVH struct {
	mesh    *Mesh
	verts   []geom.Vec3 // world-space vertex positions at build time
	nodes   []bvhNode
	triIdx  []int // permutation of triangle indices, grouped by leaf
	epsilon geom.Real
}

// Build constructs a BVH over mesh's triangles placed at the given
// world-space vertex positions (one entry per mesh.Points, typically the
// output of Mesh.WorldVertices for a single motion slot).
func Build(m *Mesh, worldVerts []geom.Vec3) *BVH {
	b := &BVH{mesh: m, verts: worldVerts}

	triIdx := make([]int, len(m.Cells))
	bounds := make([]geom.AABB, len(m.Cells))
	var scene geom.AABB = geom.EmptyAABB()
	for i, c := range m.Cells {
		triIdx[i] = i
		box := geom.EmptyAABB().
			ExpandPoint(worldVerts[c[0]]).
			ExpandPoint(worldVerts[c[1]]).
			ExpandPoint(worldVerts[c[2]])
		bounds[i] = box
		scene = scene.Union(box)
	}
	b.triIdx = triIdx
	// Numerical edge policy: t > eps * scene_extent.
	b.epsilon = 1e-5 * scene.Diagonal()
	if b.epsilon == 0 {
		b.epsilon = 1e-5
	}

	b.nodes = make([]bvhNode, 0, 2*len(m.Cells)+1)
	b.build(0, len(triIdx), bounds)
	return b
}

// build recursively partitions triIdx[start:end] by a median split along
// the longest axis of the node's bounding box, appending nodes in a
// pre-order flat layout. Returns the index of the node just appended.
func (b *BVH) build(start, end int, bounds []geom.AABB) int {
	box := geom.EmptyAABB()
	centroidBox := geom.EmptyAABB()
	for i := start; i < end; i++ {
		box = box.Union(bounds[b.triIdx[i]])
		centroidBox = centroidBox.ExpandPoint(bounds[b.triIdx[i]].Centroid())
	}

	idx := len(b.nodes)
	b.nodes = append(b.nodes, bvhNode{bounds: box, left: -1, right: -1})

	if end-start <= bvhLeafSize {
		b.nodes[idx].start = start
		b.nodes[idx].end = end
		return idx
	}

	axis := centroidBox.LongestAxis()
	slice := b.triIdx[start:end]
	sort.Slice(slice, func(i, j int) bool {
		return centroid(bounds[slice[i]], axis) < centroid(bounds[slice[j]], axis)
	})

	mid := start + (end-start)/2
	left := b.build(start, mid, bounds)
	right := b.build(mid, end, bounds)
	b.nodes[idx].left = left
	b.nodes[idx].right = right
	return idx
}

func centroid(b geom.AABB, axis int) geom.Real {
	c := b.Centroid()
	switch axis {
	case 0:
		return c.X
	case 1:
		return c.Y
	default:
		return c.Z
	}
}

// RayHit is a single ray-mesh intersection, naming the triangle hit and
// the barycentric/distance data from Möller–Trumbore.
type RayHit struct {
	Mesh  *Mesh
	Face  int
	Hit   geom.Hit
	Point geom.Vec3
}

// Intersect walks the tree with an explicit stack (nearer child pushed
// last, per the traversal rule), returning the closest hit within
// [epsilon, tMax]. Ties on coincident hits resolve to the lowest t, and
// on exact equality to the lower face index, matching triIdx iteration
// order within a leaf.
func (b *BVH) Intersect(origin, dir geom.Vec3, tMax geom.Real) (RayHit, bool) {
	if len(b.nodes) == 0 {
		return RayHit{}, false
	}

	var best RayHit
	bestT := tMax
	found := false

	stack := make([]int, 0, 64)
	stack = append(stack, 0)

	for len(stack) > 0 {
		ni := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &b.nodes[ni]

		if !n.bounds.IntersectRay(origin, dir, b.epsilon, bestT) {
			continue
		}

		if n.left == -1 {
			for i := n.start; i < n.end; i++ {
				face := b.triIdx[i]
				c := b.mesh.Cells[face]
				v0, v1, v2 := b.verts[c[0]], b.verts[c[1]], b.verts[c[2]]
				hit, ok := geom.IntersectTriangle(origin, dir, v0, v1, v2, b.epsilon)
				if !ok || hit.T > bestT {
					continue
				}
				if found && hit.T == bestT && face >= best.Face {
					continue // lower face index wins on exact ties
				}
				bestT = hit.T
				best = RayHit{
					Mesh:  b.mesh,
					Face:  face,
					Hit:   hit,
					Point: origin.Add(dir.Scale(hit.T)),
				}
				found = true
			}
			continue
		}

		// Push the farther child first so the nearer child is popped
		// (and thus traversed) first.
		lBox := b.nodes[n.left].bounds
		rBox := b.nodes[n.right].bounds
		lDist := boxDistance(lBox, origin)
		rDist := boxDistance(rBox, origin)
		if lDist <= rDist {
			stack = append(stack, n.right, n.left)
		} else {
			stack = append(stack, n.left, n.right)
		}
	}

	return best, found
}

func boxDistance(b geom.AABB, p geom.Vec3) geom.Real {
	return b.Centroid().Sub(p).Len()
}

// Epsilon returns the scene-extent-relative intersection tolerance this
// BVH was built with.
func (b *BVH) Epsilon() geom.Real { return b.epsilon }

// WorldFaceNormal recomputes face's unit normal from the BVH's
// world-space vertex positions, the correct normal to use for reflection
// at the current motion slot — Mesh.FaceNormal only ever reflects the
// mesh's local, unrotated frame.
func (b *BVH) WorldFaceNormal(face int) geom.Vec3 {
	c := b.mesh.Cells[face]
	v0, v1, v2 := b.verts[c[0]], b.verts[c[1]], b.verts[c[2]]
	cross := v1.Sub(v0).Cross(v2.Sub(v0))
	l := cross.Len()
	if l == 0 {
		return geom.Vec3{}
	}
	return cross.Scale(1 / l)
}
