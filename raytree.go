// seehuhn.de/go/motorcycle - motorcycle graphs on triangle meshes
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package motorcycle

import (
	"math"
	"slices"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r3"
)

// Hit is the result of shooting a ray at a mesh.
type Hit struct {
	Location Location
	Point    r3.Vector

	// Distance is the ray parameter of the hit, in units of the length of
	// the direction vector.
	Distance float64
}

// A RayShooter finds points on the surface of a mesh.
type RayShooter interface {
	// Locate finds a face containing p.
	Locate(p r3.Vector) (Location, bool)

	// Shoot returns the first intersection of the ray origin+s*dir, s ≥ 0,
	// with the mesh.
	Shoot(origin, dir r3.Vector) (Hit, bool)
}

// Box is an axis-aligned bounding box.
type Box [3]r1.Interval

// EmptyBox returns a box which contains no points.
func EmptyBox() Box {
	return Box{r1.EmptyInterval(), r1.EmptyInterval(), r1.EmptyInterval()}
}

// AddPoint returns the smallest box containing b and p.
func (b Box) AddPoint(p r3.Vector) Box {
	return Box{b[0].AddPoint(p.X), b[1].AddPoint(p.Y), b[2].AddPoint(p.Z)}
}

// Union returns the smallest box containing b and o.
func (b Box) Union(o Box) Box {
	return Box{b[0].Union(o[0]), b[1].Union(o[1]), b[2].Union(o[2])}
}

// IsEmpty reports whether the box contains no points.
func (b Box) IsEmpty() bool {
	return b[0].IsEmpty() || b[1].IsEmpty() || b[2].IsEmpty()
}

// Contains reports whether p lies in the box, enlarged by margin in every
// direction.
func (b Box) Contains(p r3.Vector, margin float64) bool {
	return b[0].Expanded(margin).Contains(p.X) &&
		b[1].Expanded(margin).Contains(p.Y) &&
		b[2].Expanded(margin).Contains(p.Z)
}

// Diagonal returns the length of the diagonal of the box.
func (b Box) Diagonal() float64 {
	if b.IsEmpty() {
		return 0
	}
	return r3.Vector{X: b[0].Length(), Y: b[1].Length(), Z: b[2].Length()}.Norm()
}

// rayRange clips the ray origin+s*dir against the box enlarged by margin,
// using the slab method.  The returned interval of s values is empty if the
// ray misses the box.
func (b Box) rayRange(origin, dir r3.Vector, margin float64) r1.Interval {
	o := [3]float64{origin.X, origin.Y, origin.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}
	res := r1.Interval{Lo: 0, Hi: math.Inf(1)}
	for i := range 3 {
		slab := b[i].Expanded(margin)
		if d[i] == 0 {
			if !slab.Contains(o[i]) {
				return r1.EmptyInterval()
			}
			continue
		}
		s0 := (slab.Lo - o[i]) / d[i]
		s1 := (slab.Hi - o[i]) / d[i]
		if s0 > s1 {
			s0, s1 = s1, s0
		}
		res.Lo = max(res.Lo, s0)
		res.Hi = min(res.Hi, s1)
		if res.Lo > res.Hi {
			return r1.EmptyInterval()
		}
	}
	return res
}

// FaceTree is a bounding volume hierarchy over the faces of a mesh.  It is
// used to locate points given in Cartesian coordinates and to pick points
// on the surface with a ray.
//
// The tree must be rebuilt if the mesh changes.
type FaceTree struct {
	// Tolerance is the relative tolerance for point location.
	Tolerance float64

	mesh  Mesh
	nodes []faceTreeNode
	diag  float64
}

type faceTreeNode struct {
	box         Box
	left, right int      // children, -1 for leaves
	faces       []FaceID // leaves only
}

var _ RayShooter = (*FaceTree)(nil)

// faceTreeLeafSize is the maximal number of faces in a leaf.
const faceTreeLeafSize = 4

// NewFaceTree builds a tree for all faces of m.
func NewFaceTree(m Mesh) *FaceTree {
	t := &FaceTree{
		Tolerance: DefaultTolerance,
		mesh:      m,
	}
	n := m.NumFaces()
	if n == 0 {
		return t
	}

	faces := make([]FaceID, n)
	boxes := make([]Box, n)
	centers := make([]r3.Vector, n)
	for i := range n {
		f := FaceID(i)
		faces[i] = f
		b := EmptyBox()
		var c r3.Vector
		for _, p := range FacePoints(m, f) {
			b = b.AddPoint(p)
			c = c.Add(p)
		}
		boxes[i] = b
		centers[i] = c.Mul(1.0 / 3)
	}

	t.build(faces, boxes, centers)
	t.diag = t.nodes[0].box.Diagonal()
	return t
}

func (t *FaceTree) build(faces []FaceID, boxes []Box, centers []r3.Vector) int {
	box := EmptyBox()
	for _, f := range faces {
		box = box.Union(boxes[f])
	}

	idx := len(t.nodes)
	t.nodes = append(t.nodes, faceTreeNode{box: box, left: -1, right: -1})
	if len(faces) <= faceTreeLeafSize {
		t.nodes[idx].faces = faces
		return idx
	}

	// split at the median along the longest axis
	axis := 0
	for i := 1; i < 3; i++ {
		if box[i].Length() > box[axis].Length() {
			axis = i
		}
	}
	coord := func(f FaceID) float64 {
		c := centers[f]
		switch axis {
		case 0:
			return c.X
		case 1:
			return c.Y
		default:
			return c.Z
		}
	}
	slices.SortFunc(faces, func(a, b FaceID) int {
		ca, cb := coord(a), coord(b)
		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		}
		return int(a - b)
	})
	mid := len(faces) / 2

	left := t.build(faces[:mid], boxes, centers)
	right := t.build(faces[mid:], boxes, centers)
	t.nodes[idx].left = left
	t.nodes[idx].right = right
	return idx
}

// Locate finds a face containing p.  If p is within the tolerance of
// several faces, the face in which p lies deepest is used; near ties go to
// the face with the lower id.  Coordinates within the tolerance of zero are
// set to zero.
func (t *FaceTree) Locate(p r3.Vector) (Location, bool) {
	if len(t.nodes) == 0 {
		return Location{}, false
	}
	tol := t.Tolerance
	margin := tol * max(t.diag, 1)

	var best Location
	bestScore := math.Inf(-1)
	stack := []int{0}
	for len(stack) > 0 {
		node := &t.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if !node.box.Contains(p, margin) {
			continue
		}
		if node.left >= 0 {
			stack = append(stack, node.right, node.left)
			continue
		}
		for _, f := range node.faces {
			loc, ok := Locate(t.mesh, f, p)
			if !ok {
				continue
			}
			score := min(loc.Bary[0], loc.Bary[1], loc.Bary[2])
			if score < -tol || PointOf(t.mesh, loc).Distance(p) > margin {
				continue
			}
			if score > bestScore+tol || score >= bestScore-tol && f < best.Face {
				best, bestScore = loc, score
			}
		}
	}
	if math.IsInf(bestScore, -1) {
		return Location{}, false
	}
	return cleanLocation(best, tol), true
}

// Shoot returns the first face hit by the ray origin+s*dir, s ≥ 0.
func (t *FaceTree) Shoot(origin, dir r3.Vector) (Hit, bool) {
	if len(t.nodes) == 0 || dir == (r3.Vector{}) {
		return Hit{}, false
	}
	margin := t.Tolerance * max(t.diag, 1)

	best := Hit{Distance: math.Inf(1)}
	found := false
	stack := []int{0}
	for len(stack) > 0 {
		node := &t.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		rng := node.box.rayRange(origin, dir, margin)
		if rng.IsEmpty() || rng.Lo > best.Distance {
			continue
		}
		if node.left >= 0 {
			stack = append(stack, node.right, node.left)
			continue
		}
		for _, f := range node.faces {
			s, loc, ok := rayTriangle(t.mesh, f, origin, dir, t.Tolerance)
			if !ok {
				continue
			}
			if s < best.Distance || s == best.Distance && f < best.Location.Face {
				best = Hit{Location: loc, Distance: s}
				found = true
			}
		}
	}
	if !found {
		return Hit{}, false
	}
	best.Location = cleanLocation(best.Location, t.Tolerance)
	best.Point = PointOf(t.mesh, best.Location)
	return best, true
}

// rayTriangle intersects a ray with face f, using the Möller-Trumbore
// algorithm.  Rays parallel to the face miss it.
func rayTriangle(m Mesh, f FaceID, origin, dir r3.Vector, tol float64) (float64, Location, bool) {
	pp := FacePoints(m, f)
	e1 := pp[1].Sub(pp[0])
	e2 := pp[2].Sub(pp[0])

	pv := dir.Cross(e2)
	det := e1.Dot(pv)
	if math.Abs(det) <= tol*e1.Norm()*e2.Norm()*dir.Norm() {
		return 0, Location{}, false
	}
	inv := 1 / det

	tv := origin.Sub(pp[0])
	u := tv.Dot(pv) * inv
	if u < -tol || u > 1+tol {
		return 0, Location{}, false
	}
	qv := tv.Cross(e1)
	v := dir.Dot(qv) * inv
	if v < -tol || u+v > 1+tol {
		return 0, Location{}, false
	}
	s := e2.Dot(qv) * inv
	if s < 0 {
		return 0, Location{}, false
	}

	loc := Location{Face: f, Bary: [3]float64{1 - u - v, u, v}}
	for i := range loc.Bary {
		loc.Bary[i] = max(loc.Bary[i], 0)
	}
	return s, loc, true
}
