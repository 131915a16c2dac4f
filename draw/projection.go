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

// Package draw renders meshes and motorcycle traces as 2D pictures.
package draw

import (
	"math"

	"github.com/golang/geo/r3"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/motorcycle"
)

// Projection maps points in space to the plane of a picture.  Points are
// first projected orthogonally onto the plane spanned by U and V, and the
// resulting coordinates are then transformed by M.
type Projection struct {
	U, V r3.Vector
	M    matrix.Matrix // zero value means identity
}

// TopView looks down the z-axis.
var TopView = Projection{
	U: r3.Vector{X: 1},
	V: r3.Vector{Y: 1},
	M: matrix.Identity,
}

// NewProjection returns a projection onto the plane with the given normal.
// U is the projection of the x-axis onto that plane, or of the y-axis if
// the normal is close to the x-axis.
func NewProjection(normal r3.Vector) Projection {
	n := normal.Normalize()
	if n == (r3.Vector{}) {
		return TopView
	}
	axis := r3.Vector{X: 1}
	if math.Abs(n.X) > 0.9 {
		axis = r3.Vector{Y: 1}
	}
	u := axis.Sub(n.Mul(axis.Dot(n))).Normalize()
	return Projection{U: u, V: n.Cross(u), M: matrix.Identity}
}

// ProjectionFor returns a projection onto the plane most faces of m are
// parallel to.
func ProjectionFor(m motorcycle.Mesh) Projection {
	var normal r3.Vector
	for f := range motorcycle.FaceID(m.NumFaces()) {
		pp := motorcycle.FacePoints(m, f)
		normal = normal.Add(pp[1].Sub(pp[0]).Cross(pp[2].Sub(pp[0])))
	}
	return NewProjection(normal)
}

func (p Projection) isZero() bool {
	return p.U == (r3.Vector{}) && p.V == (r3.Vector{})
}

// Apply maps a point to picture coordinates.
func (p Projection) Apply(x r3.Vector) vec.Vec2 {
	a, b := x.Dot(p.U), x.Dot(p.V)
	m := p.M
	if m == (matrix.Matrix{}) {
		m = matrix.Identity
	}
	return vec.Vec2{
		X: m[0]*a + m[2]*b + m[4],
		Y: m[1]*a + m[3]*b + m[5],
	}
}

// Invert maps a point of the picture back to the plane spanned by U and V.
// The second return value is false if M is singular.
func (p Projection) Invert(q vec.Vec2) (r3.Vector, bool) {
	m := p.M
	if m == (matrix.Matrix{}) {
		m = matrix.Identity
	}
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 {
		return r3.Vector{}, false
	}
	x, y := q.X-m[4], q.Y-m[5]
	a := (m[3]*x - m[2]*y) / det
	b := (m[0]*y - m[1]*x) / det
	return p.U.Mul(a).Add(p.V.Mul(b)), true
}

// Normal returns the viewing direction, pointing towards the viewer.
func (p Projection) Normal() r3.Vector {
	return p.U.Cross(p.V).Normalize()
}
