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
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func vec(x, y float64) *r3.Vector {
	return &r3.Vector{X: x, Y: y}
}

func TestGraphSingle(t *testing.T) {
	m := unitSquare(t)
	g := NewGraph(m)

	third := 1.0 / 3
	id, err := g.AddMotorcycle(Start{
		Location:  &Location{0, [3]float64{third, third, third}},
		Direction: vec(1.0/3, 1.0/6),
	})
	if err != nil {
		t.Fatal(err)
	}
	mc := g.Motorcycle(id)
	if mc.State() != Advancing {
		t.Errorf("got state %s after AddMotorcycle", mc.State())
	}

	if err := g.Trace(); err != nil {
		t.Fatal(err)
	}
	if mc.State() != Terminal {
		t.Errorf("got state %s after Trace", mc.State())
	}
	if g.Pending() != 0 {
		t.Errorf("%d motorcycles still pending", g.Pending())
	}

	path := mc.Path()
	if len(path) != 2 {
		t.Fatalf("got path of length %d, want 2", len(path))
	}
	diff(t, r3.Vector{X: 1, Y: 0.5}, g.Dictionary().Entry(path[1].Entry).Point(), approx)
	diff(t, math.Sqrt(5)/6, path[1].Time, approx)
	if len(g.Junctions()) != 0 {
		t.Errorf("unexpected junctions %v", g.Junctions())
	}
}

// Motorcycles cross from face to face until they reach the border.
func TestGraphCrossing(t *testing.T) {
	m := grid(t, 3)
	g := NewGraph(m)
	_, err := g.AddMotorcycle(Start{
		Point:     vec(0.5, 0.25),
		Direction: vec(1, 1),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Trace(); err != nil {
		t.Fatal(err)
	}

	mc := g.Motorcycle(0)
	path := mc.Path()
	last := g.Dictionary().Entry(path[len(path)-1].Entry).Point()
	diff(t, r3.Vector{X: 3, Y: 2.75}, last, approx)
	diff(t, 2.5*math.Sqrt2, mc.CurrentTime(), approx)

	for i := 1; i < len(path); i++ {
		if path[i].Time < path[i-1].Time {
			t.Errorf("time decreases from %g to %g", path[i-1].Time, path[i].Time)
		}
	}
}

// A motorcycle moving along the diagonals of a grid passes through the
// interior vertices.
func TestGraphThroughVertices(t *testing.T) {
	m := grid(t, 3)
	g := NewGraph(m)
	id, err := g.AddMotorcycle(Start{Point: vec(0.25, 0.25), Direction: vec(1, 1)})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Trace(); err != nil {
		t.Fatal(err)
	}

	mc := g.Motorcycle(id)
	var points []r3.Vector
	for _, tgt := range mc.Path() {
		points = append(points, g.Dictionary().Entry(tgt.Entry).Point())
	}
	want := []r3.Vector{
		{X: 0.25, Y: 0.25},
		{X: 1, Y: 1},
		{X: 2, Y: 2},
		{X: 3, Y: 3},
	}
	diff(t, want, points, approx)
	diff(t, 2.75*math.Sqrt2, mc.CurrentTime(), approx)
}

// The second motorcycle to reach a point stops there.
func TestGraphJunction(t *testing.T) {
	m := unitSquare(t)
	g := NewGraph(m)

	a, err := g.AddMotorcycle(Start{Point: vec(0.75, 0.25), Direction: vec(-1, 1)})
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.AddMotorcycle(Start{Point: vec(0.5, 0.9), Direction: vec(0, -1)})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Trace(); err != nil {
		t.Fatal(err)
	}

	jj := g.Junctions()
	if len(jj) != 1 {
		t.Fatalf("got %d junctions, want 1", len(jj))
	}
	j := jj[0]
	if j.Motorcycle != b || j.Other != a {
		t.Errorf("got junction %+v", j)
	}
	diff(t, 0.4, j.Time, approx)
	diff(t, r3.Vector{X: 0.5, Y: 0.5}, g.Dictionary().Entry(j.Entry).Point(), approx)

	// a continues to the corner (0, 1)
	mcA := g.Motorcycle(a)
	end := g.Dictionary().Entry(mcA.CurrentPosition()).Point()
	diff(t, r3.Vector{Y: 1}, end, approx)
	diff(t, 0.75*math.Sqrt2, mcA.CurrentTime(), approx)

	mcB := g.Motorcycle(b)
	if mcB.State() != Terminal {
		t.Errorf("motorcycle b is %s", mcB.State())
	}
	diff(t, 0.4, mcB.CurrentTime(), approx)
}

// Motorcycles arriving at the same point from different faces meet, even
// though the point has a different dictionary entry in each face.
func TestGraphJunctionAcrossFaces(t *testing.T) {
	m := unitSquare(t)
	g := NewGraph(m)

	// a stops at (0.5, 0.5) in face 0 at time 0.25, b arrives there from
	// face 1 at time 0.4
	a, _ := g.AddMotorcycle(Start{Point: vec(0.75, 0.5), Destination: vec(0.5, 0.5)})
	b, _ := g.AddMotorcycle(Start{Point: vec(0.1, 0.5), Direction: vec(1, 0)})
	if err := g.Trace(); err != nil {
		t.Fatal(err)
	}

	jj := g.Junctions()
	if len(jj) != 1 {
		t.Fatalf("got %d junctions, want 1", len(jj))
	}
	if jj[0].Motorcycle != b || jj[0].Other != a {
		t.Errorf("got junction %+v", jj[0])
	}
	diff(t, 0.4, jj[0].Time, approx)
}

func TestGraphDestination(t *testing.T) {
	m := unitSquare(t)
	g := NewGraph(m)
	id, err := g.AddMotorcycle(Start{
		Point:       vec(0.25, 0.1),
		Destination: vec(0.75, 0.5),
		Speed:       2,
		Time:        1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Trace(); err != nil {
		t.Fatal(err)
	}

	mc := g.Motorcycle(id)
	if _, ok := mc.InputDestination(); !ok {
		t.Error("input destination not recorded")
	}
	path := mc.Path()
	if len(path) != 2 {
		t.Fatalf("got path of length %d, want 2", len(path))
	}
	diff(t, r3.Vector{X: 0.75, Y: 0.5}, g.Dictionary().Entry(path[1].Entry).Point(), approx)
	diff(t, 1+math.Sqrt(0.41)/2, path[1].Time, approx)
	if !mc.IsFinal() || mc.State() != Terminal {
		t.Errorf("motorcycle not stopped at its destination")
	}
}

func TestGraphTimeLimit(t *testing.T) {
	m := unitSquare(t)
	g := NewGraph(m, WithTimeLimit(0.2))
	third := 1.0 / 3
	id, err := g.AddMotorcycle(Start{
		Location:  &Location{0, [3]float64{third, third, third}},
		Direction: vec(2, 1),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Trace(); err != nil {
		t.Fatal(err)
	}

	mc := g.Motorcycle(id)
	diff(t, 0.2, mc.CurrentTime(), approx)
	u := r3.Vector{X: 2, Y: 1}.Normalize()
	want := r3.Vector{X: 2.0 / 3, Y: 1.0 / 3}.Add(u.Mul(0.2))
	diff(t, want, g.Dictionary().Entry(mc.CurrentPosition()).Point(), approx)
}

// A destination beyond the time limit is replaced by the point reached at
// the limit.
func TestGraphTimeLimitDestination(t *testing.T) {
	m := unitSquare(t)
	g := NewGraph(m, WithTimeLimit(0.2))
	id, err := g.AddMotorcycle(Start{Point: vec(0.25, 0.1), Destination: vec(0.75, 0.5)})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Trace(); err != nil {
		t.Fatal(err)
	}

	mc := g.Motorcycle(id)
	diff(t, 0.2, mc.CurrentTime(), approx)
	u := r3.Vector{X: 0.5, Y: 0.4}.Normalize()
	want := r3.Vector{X: 0.25, Y: 0.1}.Add(u.Mul(0.2))
	diff(t, want, g.Dictionary().Entry(mc.CurrentPosition()).Point(), approx)
	if mc.State() != Terminal {
		t.Errorf("got state %s", mc.State())
	}
}

// folded returns the unit square together with two faces rising along
// the edge x = 1.
func folded(t *testing.T) *TriMesh {
	t.Helper()
	m, err := NewTriMesh([]r3.Vector{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
		{X: 2, Y: 0, Z: 1},
		{X: 2, Y: 1, Z: 1},
	}, [][3]int{{0, 1, 2}, {0, 2, 3}, {1, 4, 5}, {1, 5, 2}})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// A motorcycle which cannot continue across a fold stops there, and the
// other motorcycles are traced to the end.
func TestGraphFoldedMesh(t *testing.T) {
	m := folded(t)
	g := NewGraph(m)
	a, err := g.AddMotorcycle(Start{Point: vec(0.25, 0.5), Direction: vec(1, 0)})
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.AddMotorcycle(Start{Point: vec(0.1, 0.9), Direction: vec(-1, 0)})
	if err != nil {
		t.Fatal(err)
	}
	entries := g.Dictionary().Len()
	if err := g.Trace(); err != nil {
		t.Fatal(err)
	}

	mcA := g.Motorcycle(a)
	if mcA.State() != Terminal {
		t.Errorf("motorcycle %d: got state %s", a, mcA.State())
	}
	diff(t, 0.75, mcA.CurrentTime(), approx)
	diff(t, r3.Vector{X: 1, Y: 0.5}, g.Dictionary().Entry(mcA.CurrentPosition()).Point(), approx)

	mcB := g.Motorcycle(b)
	if mcB.State() != Terminal {
		t.Errorf("motorcycle %d: got state %s", b, mcB.State())
	}
	diff(t, 0.1, mcB.CurrentTime(), approx)

	// the diagonal crossing in both faces, the fold and the left border;
	// nothing is left behind in the rising face
	if n := g.Dictionary().Len(); n != entries+4 {
		t.Errorf("got %d entries, want %d", n, entries+4)
	}

	// a direction in the plane of the rising faces is accepted at the fold
	g = NewGraph(m)
	c, err := g.AddMotorcycle(Start{Point: vec(1, 0.25), Direction: &r3.Vector{X: 1, Z: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Trace(); err != nil {
		t.Fatal(err)
	}
	mcC := g.Motorcycle(c)
	diff(t, math.Sqrt2, mcC.CurrentTime(), approx)
	diff(t, r3.Vector{X: 2, Y: 0.25, Z: 1}, g.Dictionary().Entry(mcC.CurrentPosition()).Point(), approx)
}

func TestGraphNullDirection(t *testing.T) {
	m := unitSquare(t)
	g := NewGraph(m)
	id, err := g.AddMotorcycle(Start{Point: vec(0.5, 0.25), Direction: &r3.Vector{}})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Trace(); err != nil {
		t.Fatal(err)
	}
	mc := g.Motorcycle(id)
	if len(mc.Path()) != 1 || mc.CurrentTime() != 0 || mc.State() != Terminal {
		t.Errorf("motorcycle with null direction moved: %v", mc.Path())
	}
}

func TestGraphMaxEvents(t *testing.T) {
	m := grid(t, 3)
	g := NewGraph(m, WithMaxEvents(2))
	if _, err := g.AddMotorcycle(Start{Point: vec(0.5, 0.25), Direction: vec(1, 1)}); err != nil {
		t.Fatal(err)
	}
	err := g.Trace()
	if !errors.Is(err, ErrTooManyEvents) {
		t.Errorf("got %v, want %v", err, ErrTooManyEvents)
	}
	if g.Events() != 2 {
		t.Errorf("processed %d events, want 2", g.Events())
	}

	// tracing can be resumed
	g.opt.maxEvents = defaultMaxEvents
	if err := g.Trace(); err != nil {
		t.Error(err)
	}
}

func TestGraphAddErrors(t *testing.T) {
	m := unitSquare(t)
	cases := []struct {
		name string
		s    Start
		want error
	}{
		{"no position", Start{Direction: vec(1, 0)}, ErrNoPosition},
		{"no direction", Start{Point: vec(0.5, 0.25)}, ErrNoDirection},
		{"speed", Start{Point: vec(0.5, 0.25), Direction: vec(1, 0), Speed: -1}, ErrSpeed},
		{"outside", Start{Point: vec(2, 2), Direction: vec(1, 0)}, ErrOutside},
		{"face", Start{Location: &Location{Face: 5, Bary: [3]float64{1, 0, 0}}, Direction: vec(1, 0)}, ErrLocation},
		{"bary", Start{Location: &Location{Face: 0, Bary: [3]float64{1, 1, 0}}, Direction: vec(1, 0)}, ErrLocation},
		{"destination", Start{Point: vec(0.5, 0.25), Destination: vec(0.1, 0.9)}, ErrDestination},
		{"nan", Start{Location: &Location{Face: 0, Bary: [3]float64{math.NaN(), 0.5, 0.5}}, Direction: vec(1, 0)}, ErrLocation},
		{"upwards", Start{Point: vec(0.75, 0.25), Direction: &r3.Vector{Z: 1}}, ErrDirection},
		{"upwards from edge", Start{Point: vec(0.5, 0.5), Direction: &r3.Vector{Y: 1, Z: 1}}, ErrDirection},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := NewGraph(m)
			_, err := g.AddMotorcycle(c.s)
			if !errors.Is(err, c.want) {
				t.Errorf("got %v, want %v", err, c.want)
			}
			if len(g.Motorcycles()) != 0 {
				t.Error("failed AddMotorcycle left a motorcycle behind")
			}
		})
	}
}

// Events with equal times are processed in order of motorcycle id.
func TestGraphEventOrder(t *testing.T) {
	m := grid(t, 2)
	g := NewGraph(m)
	for _, x := range []float64{1.5, 0.5} {
		if _, err := g.AddMotorcycle(Start{Point: vec(x, 0.25), Direction: vec(0, 1)}); err != nil {
			t.Fatal(err)
		}
	}

	var order []MotorcycleID
	var times []float64
	for {
		e, ok := g.queue.Peek()
		if !ok {
			break
		}
		order = append(order, e.Motorcycle().ID())
		times = append(times, e.Time())
		g.Step()
	}
	if len(order) < 4 {
		t.Fatalf("only %d events", len(order))
	}
	diff(t, []MotorcycleID{0, 1}, order[:2])
	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			t.Errorf("event %d at time %g comes after time %g", i, times[i], times[i-1])
		}
	}

	for _, mc := range g.Motorcycles() {
		diff(t, 1.75, mc.CurrentTime(), cmpopts.EquateApprox(0, 1e-12))
	}
}

func TestGraphPick(t *testing.T) {
	m := unitSquare(t)
	g := NewGraph(m)

	loc, ok := g.Pick(r3.Vector{X: 0.25, Y: 0.75, Z: 2}, r3.Vector{Z: -1})
	if !ok {
		t.Fatal("ray missed the mesh")
	}
	if loc.Face != 1 {
		t.Errorf("hit face %d, want 1", loc.Face)
	}
	diff(t, r3.Vector{X: 0.25, Y: 0.75}, PointOf(m, loc), approx)

	if _, ok := g.Pick(r3.Vector{X: 3, Z: 2}, r3.Vector{Z: -1}); ok {
		t.Error("ray should miss the mesh")
	}
}
