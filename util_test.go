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
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-9)

// unitSquare returns the square [0,1]x[0,1] split along the diagonal from
// (0,0) to (1,1).  Face 0 lies below the diagonal, face 1 above it.
func unitSquare(t testing.TB) *TriMesh {
	t.Helper()
	m, err := NewTriMesh([]r3.Vector{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
	}, [][3]int{{0, 1, 2}, {0, 2, 3}})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// fan returns four triangles around an interior vertex 0 at the origin.
func fan(t testing.TB) *TriMesh {
	t.Helper()
	m, err := NewTriMesh([]r3.Vector{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 0, Y: 1},
		{X: -1, Y: 0},
		{X: 0, Y: -1},
	}, [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}, {0, 4, 1}})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// grid returns an n by n grid of unit squares, each split into two
// triangles, lying in the plane z = 0.
func grid(t testing.TB, n int) *TriMesh {
	t.Helper()
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
	m, err := NewTriMesh(points, tris)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// place inserts the location into d and returns a motorcycle there.
func place(m Mesh, d *Dictionary, id MotorcycleID, loc Location, dir r3.Vector) *Motorcycle {
	e, _ := d.Insert(loc, PointOf(m, loc))
	mc := NewMotorcycle(id, e, 0, 1)
	mc.SetDirection(dir)
	return mc
}
