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
	"errors"
	"fmt"
	"iter"

	"github.com/golang/geo/r3"
)

// VertexID identifies a vertex of a mesh.
type VertexID int

// HalfedgeID identifies a directed edge of a mesh.
type HalfedgeID int

// FaceID identifies a face of a mesh.
type FaceID int

const (
	// NullFace is the face of border halfedges.
	NullFace FaceID = -1

	// NullHalfedge marks a missing halfedge.
	NullHalfedge HalfedgeID = -1
)

// Mesh is the half-edge view of a triangle mesh used by the tracer.
//
// Every face is a triangle. The halfedges of a face form a cycle under Next.
// Border halfedges have Face() == NullFace and also form cycles under Next,
// running around each hole of the surface.
type Mesh interface {
	NumVertices() int
	NumFaces() int

	// Point returns the position of a vertex.
	Point(v VertexID) r3.Vector

	// FaceHalfedge returns one of the three halfedges of f.
	FaceHalfedge(f FaceID) HalfedgeID

	// VertexHalfedge returns a halfedge with target v.  If v lies on the
	// border of the mesh, the returned halfedge is a border halfedge.
	VertexHalfedge(v VertexID) HalfedgeID

	Next(h HalfedgeID) HalfedgeID
	Opposite(h HalfedgeID) HalfedgeID
	Source(h HalfedgeID) VertexID
	Target(h HalfedgeID) VertexID
	Face(h HalfedgeID) FaceID
}

// IsBorder reports whether h is a border halfedge.
func IsBorder(m Mesh, h HalfedgeID) bool {
	return m.Face(h) == NullFace
}

// IsBorderVertex reports whether v is incident to a border halfedge.
func IsBorderVertex(m Mesh, v VertexID) bool {
	for h := range HalfedgesAroundTarget(m, m.VertexHalfedge(v)) {
		if IsBorder(m, h) {
			return true
		}
	}
	return false
}

// HalfedgesAroundFace iterates over the halfedges of the cycle containing h.
func HalfedgesAroundFace(m Mesh, h HalfedgeID) iter.Seq[HalfedgeID] {
	return func(yield func(HalfedgeID) bool) {
		cur := h
		for {
			if !yield(cur) {
				return
			}
			cur = m.Next(cur)
			if cur == h {
				return
			}
		}
	}
}

// HalfedgesAroundTarget iterates over all halfedges which have the same
// target vertex as h, starting with h.
func HalfedgesAroundTarget(m Mesh, h HalfedgeID) iter.Seq[HalfedgeID] {
	return func(yield func(HalfedgeID) bool) {
		cur := h
		for {
			if !yield(cur) {
				return
			}
			cur = m.Opposite(m.Next(cur))
			if cur == h {
				return
			}
		}
	}
}

// FacesAroundTarget iterates over the faces incident to the target of h.
// Border positions are reported as NullFace; the caller decides whether to
// skip them.
func FacesAroundTarget(m Mesh, h HalfedgeID) iter.Seq[FaceID] {
	return func(yield func(FaceID) bool) {
		for cur := range HalfedgesAroundTarget(m, h) {
			if !yield(m.Face(cur)) {
				return
			}
		}
	}
}

// FaceVertices returns the three vertices of f.  Vertex i is the source of
// the i-th halfedge, counting from FaceHalfedge(f).  This is the order of the
// barycentric coordinates in a [Location].
func FaceVertices(m Mesh, f FaceID) [3]VertexID {
	h0 := m.FaceHalfedge(f)
	h1 := m.Next(h0)
	h2 := m.Next(h1)
	return [3]VertexID{m.Source(h0), m.Source(h1), m.Source(h2)}
}

// FacePoints returns the corner positions of f, in barycentric order.
func FacePoints(m Mesh, f FaceID) [3]r3.Vector {
	vv := FaceVertices(m, f)
	return [3]r3.Vector{m.Point(vv[0]), m.Point(vv[1]), m.Point(vv[2])}
}

// Errors returned by NewTriMesh.
var (
	ErrVertexIndex     = errors.New("motorcycle: vertex index out of range")
	ErrDegenerateFace  = errors.New("motorcycle: triangle repeats a vertex")
	ErrNonManifoldEdge = errors.New("motorcycle: non-manifold edge")
	ErrNonManifoldVert = errors.New("motorcycle: non-manifold border vertex")
)

// TriMesh is an array based half-edge triangle mesh.
//
// Halfedges 3f, 3f+1 and 3f+2 belong to face f.  Border halfedges are
// appended after the face halfedges.
type TriMesh struct {
	points []r3.Vector
	nFaces int

	next     []HalfedgeID
	opposite []HalfedgeID
	target   []VertexID
	face     []FaceID

	vertexHalfedge []HalfedgeID
}

var _ Mesh = (*TriMesh)(nil)

// NewTriMesh builds a half-edge mesh from a list of vertex positions and a
// list of triangles.  Triangle corners refer to indices into points and
// should be consistently oriented.
func NewTriMesh(points []r3.Vector, triangles [][3]int) (*TriMesh, error) {
	nf := len(triangles)
	m := &TriMesh{
		points:   points,
		nFaces:   nf,
		next:     make([]HalfedgeID, 3*nf),
		opposite: make([]HalfedgeID, 3*nf),
		target:   make([]VertexID, 3*nf),
		face:     make([]FaceID, 3*nf),
	}

	type edgeKey struct{ from, to VertexID }
	edges := make(map[edgeKey]HalfedgeID, 3*nf)
	source := make([]VertexID, 3*nf)

	for f, tri := range triangles {
		for i, v := range tri {
			if v < 0 || v >= len(points) {
				return nil, fmt.Errorf("triangle %d: %w", f, ErrVertexIndex)
			}
			if v == tri[(i+1)%3] {
				return nil, fmt.Errorf("triangle %d: %w", f, ErrDegenerateFace)
			}
		}
		for i := range 3 {
			h := HalfedgeID(3*f + i)
			from := VertexID(tri[i])
			to := VertexID(tri[(i+1)%3])
			key := edgeKey{from, to}
			if _, dup := edges[key]; dup {
				return nil, fmt.Errorf("edge %d->%d: %w", from, to, ErrNonManifoldEdge)
			}
			edges[key] = h
			source[h] = from
			m.target[h] = to
			m.face[h] = FaceID(f)
			m.next[h] = HalfedgeID(3*f + (i+1)%3)
			m.opposite[h] = NullHalfedge
		}
	}

	// pair interior halfedges, create border halfedges for the rest
	borderFrom := make(map[VertexID]HalfedgeID)
	for h := range HalfedgeID(3 * nf) {
		if m.opposite[h] != NullHalfedge {
			continue
		}
		if o, ok := edges[edgeKey{m.target[h], source[h]}]; ok {
			m.opposite[h] = o
			m.opposite[o] = h
			continue
		}
		b := HalfedgeID(len(m.target))
		m.target = append(m.target, source[h])
		m.face = append(m.face, NullFace)
		m.next = append(m.next, NullHalfedge)
		m.opposite = append(m.opposite, h)
		m.opposite[h] = b

		from := m.target[h]
		if _, dup := borderFrom[from]; dup {
			return nil, fmt.Errorf("vertex %d: %w", from, ErrNonManifoldVert)
		}
		borderFrom[from] = b
	}
	for b := HalfedgeID(3 * nf); int(b) < len(m.target); b++ {
		m.next[b] = borderFrom[m.target[b]]
	}

	m.vertexHalfedge = make([]HalfedgeID, len(points))
	for i := range m.vertexHalfedge {
		m.vertexHalfedge[i] = NullHalfedge
	}
	for h, v := range m.target {
		cur := m.vertexHalfedge[v]
		if cur == NullHalfedge || m.face[h] == NullFace && m.face[cur] != NullFace {
			m.vertexHalfedge[v] = HalfedgeID(h)
		}
	}

	return m, nil
}

// NumVertices returns the number of vertices, including isolated ones.
func (m *TriMesh) NumVertices() int { return len(m.points) }

// NumFaces returns the number of triangles.
func (m *TriMesh) NumFaces() int { return m.nFaces }

// NumHalfedges returns the number of halfedges, border halfedges included.
func (m *TriMesh) NumHalfedges() int { return len(m.target) }

func (m *TriMesh) Point(v VertexID) r3.Vector           { return m.points[v] }
func (m *TriMesh) FaceHalfedge(f FaceID) HalfedgeID     { return HalfedgeID(3 * f) }
func (m *TriMesh) VertexHalfedge(v VertexID) HalfedgeID { return m.vertexHalfedge[v] }
func (m *TriMesh) Next(h HalfedgeID) HalfedgeID         { return m.next[h] }
func (m *TriMesh) Opposite(h HalfedgeID) HalfedgeID     { return m.opposite[h] }
func (m *TriMesh) Source(h HalfedgeID) VertexID         { return m.target[m.opposite[h]] }
func (m *TriMesh) Target(h HalfedgeID) VertexID         { return m.target[h] }
func (m *TriMesh) Face(h HalfedgeID) FaceID             { return m.face[h] }
