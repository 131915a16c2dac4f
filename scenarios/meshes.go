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

package scenarios

import (
	"math"

	"github.com/golang/geo/r3"
)

// square builds the unit square, split along the diagonal from (0,0) to
// (1,1).
func square() ([]r3.Vector, [][3]int) {
	points := []r3.Vector{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
	}
	return points, [][3]int{{0, 1, 2}, {0, 2, 3}}
}

// grid builds an n by n grid of unit squares with lower left corner at the
// origin.  Each square is split along its rising diagonal.
func grid(n int) ([]r3.Vector, [][3]int) {
	var points []r3.Vector
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			points = append(points, r3.Vector{X: float64(i), Y: float64(j)})
		}
	}
	var tris [][3]int
	for j := range n {
		for i := range n {
			a := j*(n+1) + i
			b := a + 1
			c := a + n + 2
			d := a + n + 1
			tris = append(tris, [3]int{a, b, c}, [3]int{a, c, d})
		}
	}
	return points, tris
}

// lShape builds a 2 by 2 grid with the upper right square removed.
func lShape() ([]r3.Vector, [][3]int) {
	points, tris := grid(2)
	return points, tris[:6]
}

// fan builds a regular polygon with n corners around a centre vertex at
// the origin.  Vertex 0 is the centre.
func fan(n int, r float64) ([]r3.Vector, [][3]int) {
	points := []r3.Vector{{}}
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		points = append(points, r3.Vector{X: r * math.Cos(phi), Y: r * math.Sin(phi)})
	}
	var tris [][3]int
	for i := range n {
		tris = append(tris, [3]int{0, 1 + i, 1 + (i+1)%n})
	}
	return points, tris
}

// tilt moves all points onto the plane z = a*x + b*y.
func tilt(points []r3.Vector, a, b float64) []r3.Vector {
	res := make([]r3.Vector, len(points))
	for i, p := range points {
		res[i] = r3.Vector{X: p.X, Y: p.Y, Z: a*p.X + b*p.Y}
	}
	return res
}
