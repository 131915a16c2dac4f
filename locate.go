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
	"fmt"

	"github.com/golang/geo/r3"
)

// DefaultTolerance is the tolerance used for comparing barycentric
// coordinates when no other value is configured.
const DefaultTolerance = 1e-9

// Location describes a point on the surface of a mesh by a face and
// barycentric coordinates relative to the corners of that face, in the order
// given by [FaceVertices].
type Location struct {
	Face FaceID
	Bary [3]float64
}

func (loc Location) String() string {
	return fmt.Sprintf("f%d[%g %g %g]", loc.Face, loc.Bary[0], loc.Bary[1], loc.Bary[2])
}

// Element is the mesh element a location lies in: a vertex, the interior of
// an edge, or the interior of a face.
type Element interface {
	isElement()
}

// VertexElement is a location at a mesh vertex.
type VertexElement struct {
	Vertex VertexID
}

// HalfedgeElement is a location in the interior of an edge.  Halfedge is the
// halfedge of the location's face.
type HalfedgeElement struct {
	Halfedge HalfedgeID
}

// FaceElement is a location in the interior of a face.
type FaceElement struct {
	Face FaceID
}

func (VertexElement) isElement()   {}
func (HalfedgeElement) isElement() {}
func (FaceElement) isElement()     {}

// ElementOf classifies loc by counting the barycentric coordinates which are
// exactly zero.  Use [SnapToBorder] first if the coordinates come from
// floating point computations.
func ElementOf(m Mesh, loc Location) Element {
	nZero := 0
	zero, nonZero := -1, -1
	for i, c := range loc.Bary {
		if c == 0 {
			nZero++
			zero = i
		} else {
			nonZero = i
		}
	}

	switch nZero {
	case 0:
		return FaceElement{Face: loc.Face}
	case 1:
		// the halfedge not incident to the corner with coordinate zero
		h := m.FaceHalfedge(loc.Face)
		for range (zero + 1) % 3 {
			h = m.Next(h)
		}
		return HalfedgeElement{Halfedge: h}
	case 2:
		return VertexElement{Vertex: FaceVertices(m, loc.Face)[nonZero]}
	default:
		panic("motorcycle: location with all coordinates zero")
	}
}

// PointOf returns the Cartesian coordinates of loc.
func PointOf(m Mesh, loc Location) r3.Vector {
	pp := FacePoints(m, loc.Face)
	return pp[0].Mul(loc.Bary[0]).
		Add(pp[1].Mul(loc.Bary[1])).
		Add(pp[2].Mul(loc.Bary[2]))
}

// Locate computes the barycentric coordinates of p, projected onto the
// supporting plane of f.  The coordinates may be negative if p is outside
// the triangle.  The second return value is false if f has zero area.
func Locate(m Mesh, f FaceID, p r3.Vector) (Location, bool) {
	pp := FacePoints(m, f)
	v0 := pp[1].Sub(pp[0])
	v1 := pp[2].Sub(pp[0])
	v2 := p.Sub(pp[0])

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)

	denom := d00*d11 - d01*d01
	if denom == 0 {
		return Location{}, false
	}
	b1 := (d11*d20 - d01*d21) / denom
	b2 := (d00*d21 - d01*d20) / denom
	return Location{Face: f, Bary: [3]float64{1 - b1 - b2, b1, b2}}, true
}

// LocateIn expresses loc in face f.  If the point of loc is a vertex of f or
// lies on an edge of f, the result is exact: the coordinates are copied to
// the matching corners and all other coordinates are zero.  Otherwise the
// point is located geometrically.
func LocateIn(m Mesh, loc Location, f FaceID) (Location, bool) {
	if loc.Face == f {
		return loc, true
	}

	src := FaceVertices(m, loc.Face)
	dst := FaceVertices(m, f)
	res := Location{Face: f}
corners:
	for i, c := range loc.Bary {
		if c == 0 {
			continue
		}
		for j, v := range dst {
			if v == src[i] {
				res.Bary[j] += c
				continue corners
			}
		}
		return Locate(m, f, PointOf(m, loc))
	}
	return res, true
}

// SnapToBorder moves a location which is known to lie on the border of its
// face onto that border.  Coordinates smaller than tol, and in any case the
// smallest coordinate, are set to exactly zero.  The remaining coordinates
// are clamped to at most one and renormalized.
func SnapToBorder(loc Location, tol float64) Location {
	b := loc.Bary
	iMin := 0
	for i := 1; i < 3; i++ {
		if b[i] < b[iMin] {
			iMin = i
		}
	}

	var sum float64
	for i := range b {
		switch {
		case i == iMin || b[i] < tol:
			b[i] = 0
		case b[i] > 1:
			b[i] = 1
		}
		sum += b[i]
	}
	for i := range b {
		b[i] /= sum
	}
	return Location{Face: loc.Face, Bary: b}
}

// cleanLocation sets coordinates within tol of zero to exactly zero and
// renormalizes.  Unlike SnapToBorder, points inside the face stay inside.
func cleanLocation(loc Location, tol float64) Location {
	b := loc.Bary
	var sum float64
	for i := range b {
		if b[i] < tol {
			b[i] = 0
		}
		sum += b[i]
	}
	if sum == 0 {
		return loc
	}
	for i := range b {
		b[i] /= sum
	}
	return Location{Face: loc.Face, Bary: b}
}
