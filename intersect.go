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

	"github.com/golang/geo/r3"
)

// parallel reports whether u and v are exactly parallel (or one of them is
// zero).  The cross product is evaluated in exact arithmetic.
func parallel(u, v r3.Vector) bool {
	c := r3.PreciseVectorFromVector(u).Cross(r3.PreciseVectorFromVector(v))
	return c.Norm2().Sign() == 0
}

// intersectRaySegment intersects the ray origin+s*dir, s ≥ 0, with the
// segment from a to b.  Ray and segment are assumed to lie in a common
// plane; lines which miss each other by more than the tolerance are
// rejected.  The intersection point is returned together with the
// parameter t ∈ [0, 1] along the segment.
//
// A ray which is aligned with the segment gives no intersection.  In a
// triangle, the neighbouring edges then report the end point of the
// aligned edge.
func intersectRaySegment(origin, dir, a, b r3.Vector, tol float64) (r3.Vector, float64, bool) {
	e := b.Sub(a)
	if parallel(dir, e) {
		return r3.Vector{}, 0, false
	}

	n := dir.Cross(e)
	n2 := n.Norm2()
	w := a.Sub(origin)

	// distance between the two lines, relative to the size of the problem
	scale := max(w.Norm(), e.Norm(), 1)
	if math.Abs(w.Dot(n)) > tol*scale*math.Sqrt(n2) {
		return r3.Vector{}, 0, false
	}

	s := w.Cross(e).Dot(n) / n2
	t := w.Cross(dir).Dot(n) / n2

	sTol := tol * scale / dir.Norm()
	if s < -sTol || t < -tol || t > 1+tol {
		return r3.Vector{}, 0, false
	}
	t = min(max(t, 0), 1)

	switch t {
	case 0:
		return a, 0, true
	case 1:
		return b, 1, true
	}
	return a.Add(e.Mul(t)), t, true
}
